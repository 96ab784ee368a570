package yahoo_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
)

// jsonResponse builds a response carrying body.
func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// stubHTTPClient returns a mock that expects exactly one request, runs check
// on it when non-nil, and answers with status and body.
func stubHTTPClient(t *testing.T, status int, body string, check func(req *http.Request)) *MockHTTPClient {
	t.Helper()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			if check != nil {
				check(req)
			}
			return jsonResponse(status, body), nil
		}).
		Times(1)
	return httpClient
}

func ptr[T any](v T) *T { return &v }
