package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"contentsage-api/core/interfaces"
)

func TestValidateHandler_MixedResults(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			if url == "https://example.com/ok" {
				return &mockResponse{statusCode: 200}, nil
			}
			return nil, errors.New("connection refused")
		},
	}
	handler := NewValidateHandler(client)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/validate", map[string]interface{}{
		"urls": []string{
			"https://example.com/ok",
			"https://example.com/down",
			"ftp://example.com/file",
			"not a url at all ::",
		},
	})

	if resp.Code != 200 {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	body := resp.Body.String()
	for _, want := range []string{`"valid"`, `"invalid"`} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %s: %s", want, body)
		}
	}
}

func TestValidateHandler_NoURLs(t *testing.T) {
	handler := NewValidateHandler(&mockHTTPClient{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/validate", map[string]interface{}{
		"urls": []string{},
	})

	if resp.Code != 400 {
		t.Errorf("status = %d, want 400", resp.Code)
	}
}

func TestValidateHandler_RedirectCountsAsValid(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 301}, nil
		},
	}
	handler := NewValidateHandler(client)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/validate", map[string]interface{}{
		"urls": []string{"https://example.com/moved"},
	})

	if resp.Code != 200 {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"valid"`) {
		t.Errorf("3xx should validate: %s", resp.Body.String())
	}
}
