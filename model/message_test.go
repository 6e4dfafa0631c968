package model

import "testing"

func TestMessageParts(t *testing.T) {
	msg := NewUserImageMessage("see below", EncodeDataURL([]byte{1, 2, 3}))

	if msg.IsTextOnly() {
		t.Error("message with an image part is not text-only")
	}
	if msg.PlainText() != "see below" {
		t.Errorf("PlainText() = %q", msg.PlainText())
	}
	if len(msg.Images()) != 1 {
		t.Errorf("Images() has %d entries, want 1", len(msg.Images()))
	}

	plain := NewTextMessage(RoleAssistant, "done")
	if !plain.IsTextOnly() {
		t.Error("text message should be text-only")
	}
	if len(plain.Images()) != 0 {
		t.Error("text message should carry no images")
	}
}

func TestDecodeDataURL(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	data, ok := DecodeDataURL(EncodeDataURL(png))
	if !ok || string(data) != string(png) {
		t.Error("encode/decode mismatch")
	}

	for _, bad := range []string{
		"",
		"http://example.com/x.png",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png,rawdata",
	} {
		if _, ok := DecodeDataURL(bad); ok {
			t.Errorf("DecodeDataURL(%q) should fail", bad)
		}
	}
}
