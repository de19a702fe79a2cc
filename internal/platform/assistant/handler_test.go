package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubClient struct {
	reply string
	err   error
	got   []Message
}

func (s *stubClient) Complete(_ context.Context, _ string, messages []Message) (string, error) {
	s.got = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestChatHandler(t *testing.T) {
	stub := &stubClient{reply: "Open the Doctors section."}
	h := NewHandler(stub, zerolog.Nop())
	e := echo.New()

	body := `{"messages":[{"role":"user","content":"Where do I add a doctor?"}]}`
	req := httptest.NewRequest(http.MethodPost, "/assistant", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Reply != "Open the Doctors section." {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
	if len(stub.got) != 1 {
		t.Errorf("messages not forwarded: %+v", stub.got)
	}
}

func TestChatHandlerUpstreamFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("boom")}
	h := NewHandler(stub, zerolog.Nop())
	e := echo.New()

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/assistant", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Chat(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 HTTPError, got %v", err)
	}
}
