package gemini

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, wire string) (*Response, error) {
	t.Helper()
	return readResponse(strings.NewReader(wire))
}

func TestSuccessResponse(t *testing.T) {
	resp, err := parse(t, "20 text/plain\r\nhello")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Category() != CategorySuccess {
		t.Fatalf("category = %v, want success", resp.Category())
	}
	if resp.MIME != "text/plain" {
		t.Errorf("MIME = %q, want %q (header must be trimmed)", resp.MIME, "text/plain")
	}
	if string(resp.Body) != "hello" {
		t.Errorf("Body = %q, want %q", resp.Body, "hello")
	}
}

func TestSuccessWithoutBody(t *testing.T) {
	resp, err := parse(t, "20 text/gemini")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.MIME != "text/gemini" || len(resp.Body) != 0 {
		t.Errorf("unexpected response: %#v", resp)
	}
}

func TestPermanentFailureWithEmptyMessage(t *testing.T) {
	resp, err := parse(t, "51 ")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Code != CodeNotFound || resp.Category() != CategoryPermanentFailure {
		t.Errorf("unexpected classification: %#v", resp)
	}
	if resp.Message != "" {
		t.Errorf("Message = %q, want empty", resp.Message)
	}
}

func TestFailureMessageIsTrimmed(t *testing.T) {
	resp, err := parse(t, "40  try later \r\n")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Message != "try later" {
		t.Errorf("Message = %q, want %q", resp.Message, "try later")
	}
}

func TestInputResponses(t *testing.T) {
	resp, err := parse(t, "10 What is your name?\r\n")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Category() != CategoryInput || resp.Sensitive {
		t.Errorf("unexpected classification: %#v", resp)
	}
	if resp.Prompt != "What is your name?" {
		t.Errorf("Prompt = %q", resp.Prompt)
	}

	resp, err = parse(t, "11 Password:")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if !resp.Sensitive {
		t.Error("code 11 must be sensitive input")
	}
}

func TestRedirectResponses(t *testing.T) {
	resp, err := parse(t, "31 gemini://new.example/ \r\n")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Category() != CategoryRedirect || !resp.Permanent {
		t.Errorf("unexpected classification: %#v", resp)
	}
	if resp.Target.String() != "gemini://new.example/" {
		t.Errorf("Target = %q", resp.Target)
	}

	if _, err := parse(t, "30 /relative/only"); !errors.Is(err, ErrResolve) {
		t.Errorf("relative redirect target: got %v, want ErrResolve", err)
	}
}

func TestClientCertificateError(t *testing.T) {
	resp, err := parse(t, "60 certificate required")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if resp.Category() != CategoryClientCertError || resp.Message != "certificate required" {
		t.Errorf("unexpected classification: %#v", resp)
	}
}

func TestInvalidResponseCode(t *testing.T) {
	if _, err := parse(t, "99 whatever"); !errors.Is(err, ErrProtocol) {
		t.Errorf("code 99: got %v, want ErrProtocol", err)
	}
	if _, err := parse(t, "71 "); !errors.Is(err, ErrProtocol) {
		t.Errorf("code 71: got %v, want ErrProtocol", err)
	}
}

func TestUnknownSubCode(t *testing.T) {
	if _, err := parse(t, "12 "); !errors.Is(err, ErrProtocol) {
		t.Errorf("code 12: got %v, want ErrProtocol", err)
	}
	if _, err := parse(t, "45 "); !errors.Is(err, ErrProtocol) {
		t.Errorf("code 45: got %v, want ErrProtocol", err)
	}
}

func TestMalformedStatusToken(t *testing.T) {
	for _, wire := range []string{"2", "20", "2x response", "20x", "ab cd"} {
		if _, err := parse(t, wire); err == nil {
			t.Errorf("%q: expected an error", wire)
		}
	}
}

func TestInvalidUTF8Meta(t *testing.T) {
	if _, err := parse(t, "10 \xff\xfe"); !errors.Is(err, ErrEncoding) {
		t.Errorf("got %v, want ErrEncoding", err)
	}
	if _, err := parse(t, "20 \xff\xfe\nbody"); !errors.Is(err, ErrEncoding) {
		t.Errorf("invalid mime header: got %v, want ErrEncoding", err)
	}
}

func TestBinaryBodyIsNotDecoded(t *testing.T) {
	resp, err := parse(t, "20 application/octet-stream\n\xff\xfe\x00")
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if string(resp.Body) != "\xff\xfe\x00" {
		t.Errorf("Body = %v, want raw bytes", resp.Body)
	}
}

func TestBodyCap(t *testing.T) {
	header := "20 text/plain\n"
	resp, err := readResponse(strings.NewReader(header + strings.Repeat("a", MaxBodySize+4096)))
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	// The cap covers the remainder after the status token, mime line
	// included.
	want := MaxBodySize - (len(header) - 3)
	if len(resp.Body) != want {
		t.Errorf("capped body length = %d, want %d", len(resp.Body), want)
	}
}
