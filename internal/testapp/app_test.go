package testapp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getmockd/factories/internal/testapp"
	"github.com/getmockd/factories/pkg/factories"
	"github.com/getmockd/factories/pkg/logging"
)

func newKit(t *testing.T) *factories.Kit {
	t.Helper()
	k, err := testapp.NewKit(factories.WithLogger(logging.Nop()))
	require.NoError(t, err)
	return k
}
