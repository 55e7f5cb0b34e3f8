package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/factories/pkg/factories"
	"github.com/getmockd/factories/pkg/naming"
)

// Subject kinds accepted by --kind.
const (
	KindRequest  = "request"
	KindResource = "resource"
)

var errUnknownKind = errors.New("unknown kind")

func resolverFor(k *factories.Kit, kind string) (naming.Resolver, error) {
	switch kind {
	case KindRequest:
		return k.Requests.Resolver(), nil
	case KindResource:
		return k.Resources.Resolver(), nil
	}
	return naming.Resolver{}, fmt.Errorf("%w %q (want %s or %s)", errUnknownKind, kind, KindRequest, KindResource)
}

func newResolveCommand(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "resolve SUBJECT...",
		Short: "Print the factory name of each subject",
		Long: `Print the factory name the convention resolver derives for each subject.

A subject outside the configured subject root is resolved as if it were
relative to it.`,
		Example: `  factories resolve app/http/requests/StorePostRequest
  factories resolve --kind resource UserResource`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.kit()
			if err != nil {
				return err
			}
			r, err := resolverFor(k, kind)
			if err != nil {
				return err
			}
			for _, subject := range args {
				factory := r.ResolveFactory(subject)
				k.Logger.Debug("resolved factory", "kind", kind, "subject", subject, "factory", factory)
				fmt.Fprintln(cmd.OutOrStdout(), factory)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", KindRequest, "subject kind (request or resource)")
	return cmd
}

func newSubjectCommand(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "subject FACTORY...",
		Short: "Print the subject name of each factory",
		Example: `  factories subject tests/requestfactories/StorePostRequestFactory
  factories subject --kind resource tests/resourcefactories/UserResourceFactory`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.kit()
			if err != nil {
				return err
			}
			r, err := resolverFor(k, kind)
			if err != nil {
				return err
			}
			for _, factory := range args {
				subject := r.ResolveSubject(factory)
				k.Logger.Debug("resolved subject", "kind", kind, "factory", factory, "subject", subject)
				fmt.Fprintln(cmd.OutOrStdout(), subject)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", KindRequest, "factory kind (request or resource)")
	return cmd
}
