package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/getmockd/factories/pkg/httputil"
	"github.com/getmockd/factories/pkg/testresponse"
	"github.com/getmockd/factories/pkg/util"
)

// BaseURL prefixes the URI of every made request.
const BaseURL = "http://localhost"

// RequestIDHeader is set on made requests that do not carry one.
const RequestIDHeader = "X-Request-Id"

// Make materializes the attributes and builds the request for the subject.
// The request is not validated.
func (f *Factory) Make(overrides ...map[string]any) (*Request, error) {
	if f.err != nil {
		return nil, f.err
	}

	subject, err := f.resolveSubject()
	if err != nil {
		return nil, err
	}

	input := f.Form(overrides...)

	path, err := f.resolvePath()
	if err != nil {
		return nil, err
	}

	target, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("request: invalid uri %q: %w", path, err)
	}
	if !target.IsAbs() {
		target, err = url.Parse(BaseURL + "/" + strings.TrimPrefix(path, "/"))
		if err != nil {
			return nil, fmt.Errorf("request: invalid uri %q: %w", path, err)
		}
	}

	body, contentType, err := f.encode(target, input)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(context.Background(), f.method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request: build %s %s: %w", f.method, target, err)
	}
	if len(body) == 0 {
		httpReq.Body = http.NoBody
	}
	httpReq.RemoteAddr = "127.0.0.1:0"
	httpReq.Header = f.headers.Clone()
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	for _, c := range f.cookies {
		httpReq.AddCookie(c)
	}

	route := &Route{
		Name:       f.routeName,
		Method:     f.method,
		URI:        target.Path,
		Methods:    routeMethods(f.method),
		Parameters: maps.Clone(f.routeParams),
	}

	r := &Request{
		subject:      subject,
		input:        input,
		files:        maps.Clone(f.files),
		route:        route,
		userResolver: f.userResolver,
	}
	r.Request = mux.SetURLVars(httpReq, r.routeStrings())

	f.logger.Debug("made request",
		"method", f.method,
		"url", target.String(),
		"route", f.routeName,
		"body", util.TruncateBody(string(body), 0),
	)
	return r, nil
}

// Validate makes the request and runs it through the pipeline. A passing
// request yields an empty 200 response; a failure is rendered. Pipeline
// failures, panics included, are never returned as errors.
func (f *Factory) Validate(overrides ...map[string]any) (*testresponse.Response, error) {
	r, err := f.Make(overrides...)
	if err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	if err := f.provider.runPipeline(r); err != nil {
		f.logger.Debug("request failed", "error", err)
		f.provider.renderer.Render(rec, r, err)
	} else {
		httputil.WriteEmpty(rec, http.StatusOK)
	}
	return testresponse.FromRecorder(rec).WithRequest(r.Request), nil
}

func (f *Factory) resolveSubject() (FormRequest, error) {
	if f.subject != nil {
		return f.subject, nil
	}
	if f.name == "" {
		return nil, ErrNoSubject
	}
	name := f.provider.resolver.ResolveSubject(f.name)
	subject, err := f.provider.subjects.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSubject, err)
	}
	return subject, nil
}

func (f *Factory) resolvePath() (string, error) {
	if f.routeName == "" {
		return f.uri, nil
	}
	if f.provider.router == nil {
		return "", fmt.Errorf("%w: route %q", ErrNoRouter, f.routeName)
	}

	keys := slices.Sorted(maps.Keys(f.routeParams))
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, cast.ToString(f.routeParams[k]))
	}

	path, err := f.provider.router.URL(f.routeName, pairs...)
	if err != nil {
		return "", fmt.Errorf("request: resolve route %q: %w", f.routeName, err)
	}
	return path, nil
}

// encode writes input to the query string of target, or returns it as a
// body with its content type.
func (f *Factory) encode(target *url.URL, input map[string]any) ([]byte, string, error) {
	switch f.method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		if len(input) > 0 {
			values, err := formValues(input)
			if err != nil {
				return nil, "", err
			}
			query := target.Query()
			for k, vs := range values {
				query[k] = append(query[k], vs...)
			}
			target.RawQuery = query.Encode()
		}
		if f.hasContent {
			return f.content, "", nil
		}
		return nil, "", nil
	}

	if f.hasContent {
		return f.content, "", nil
	}
	if len(f.files) > 0 {
		return f.multipart(input)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, "", fmt.Errorf("request: encode input: %w", err)
	}
	return body, "application/json", nil
}

func (f *Factory) multipart(input map[string]any) ([]byte, string, error) {
	values, err := formValues(input)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("request: write field %s: %w", k, err)
			}
		}
	}

	for _, k := range slices.Sorted(maps.Keys(f.files)) {
		for _, file := range f.files[k] {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, k, file.Filename))
			ct := file.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", fmt.Errorf("request: create part %s: %w", k, err)
			}
			if _, err := io.Copy(part, bytes.NewReader(file.Content)); err != nil {
				return nil, "", fmt.Errorf("request: write part %s: %w", k, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("request: close multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// formValues flattens input with bracket notation:
// {"tags": ["a"], "address": {"city": "x"}} -> tags[0]=a&address[city]=x.
// Booleans become 1 and 0, nil becomes an empty value.
func formValues(input map[string]any) (url.Values, error) {
	values := url.Values{}
	for _, k := range slices.Sorted(maps.Keys(input)) {
		if err := flatten(values, k, input[k]); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func flatten(values url.Values, key string, v any) error {
	switch tv := v.(type) {
	case nil:
		values.Add(key, "")
		return nil
	case bool:
		if tv {
			values.Add(key, "1")
		} else {
			values.Add(key, "0")
		}
		return nil
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(tv)) {
			if err := flatten(values, key+"["+k+"]", tv[k]); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			values.Add(key, string(rv.Bytes()))
			return nil
		}
		for i := range rv.Len() {
			if err := flatten(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map, reflect.Struct, reflect.Pointer:
		normalized, err := jsonForm(v)
		if err != nil {
			return fmt.Errorf("request: encode %s: %w", key, err)
		}
		return flatten(values, key, normalized)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("request: encode %s: %w", key, err)
	}
	values.Add(key, s)
	return nil
}

func routeMethods(method string) []string {
	if method == http.MethodGet {
		return []string{http.MethodGet, http.MethodHead}
	}
	return []string{method}
}
