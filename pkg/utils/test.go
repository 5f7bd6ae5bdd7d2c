package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequest(t *testing.T, method string, url string, body io.Reader, handler func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()

	handler(w, req)

	return w
}

// TestRequestJSON sends payload marshalled as the request body.
func TestRequestJSON(t *testing.T, method string, url string, payload interface{}, handler func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	return TestRequest(t, method, url, strings.NewReader(string(data)), handler)
}

func TestExpectedStatus(t *testing.T, rr *httptest.ResponseRecorder, statusCode int) {
	t.Helper()

	if rr.Code != statusCode {
		t.Errorf("expected status code %d, got %d: %s", statusCode, rr.Code, rr.Body.String())
	}
}

func TestExpectedMessage(t *testing.T, rr *httptest.ResponseRecorder, m string) {
	t.Helper()

	if !strings.Contains(rr.Body.String(), m) {
		t.Errorf("received message `%s`, expected message `%s`", rr.Body.String(), m)
	}
}

func TestDecodeResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response `%s`: %v", rr.Body.String(), err)
	}
}
