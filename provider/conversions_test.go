package provider

import (
	"testing"

	"interact/model"
)

func TestConvertToOllamaMessages(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	messages := []model.Message{
		model.NewTextMessage(model.RoleSystem, "be careful"),
		model.NewUserImageMessage("here is the window", model.EncodeDataURL(png)),
	}

	got := ConvertToOllamaMessages(messages)
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}

	if got[0].Role != "system" || got[0].Content != "be careful" {
		t.Errorf("system message = %+v", got[0])
	}

	if got[1].Content != "here is the window" {
		t.Errorf("user content = %q", got[1].Content)
	}
	if len(got[1].Images) != 1 {
		t.Fatalf("got %d images, want 1", len(got[1].Images))
	}
	if string(got[1].Images[0]) != string(png) {
		t.Error("image bytes were not decoded from the data URL")
	}
}

func TestConvertToOllamaMessagesBadImageSkipped(t *testing.T) {
	messages := []model.Message{
		{
			Role: model.RoleUser,
			Parts: []model.Part{
				{Type: model.PartText, Text: "look"},
				{Type: model.PartImage, ImageURL: "not a data url"},
			},
		},
	}

	got := ConvertToOllamaMessages(messages)
	if len(got[0].Images) != 0 {
		t.Errorf("malformed data URL produced %d images, want 0", len(got[0].Images))
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	png := []byte{1, 2, 3}
	messages := []model.Message{
		model.NewTextMessage(model.RoleSystem, "sys"),
		model.NewTextMessage(model.RoleAssistant, "done"),
		model.NewTextMessage(model.RoleUser, "plain"),
		model.NewUserImageMessage("with image", model.EncodeDataURL(png)),
	}

	got := ConvertToOpenAIMessages(messages)
	if len(got) != 4 {
		t.Fatalf("got %d messages, want 4", len(got))
	}

	if got[0].OfSystem == nil {
		t.Error("first message should be a system message")
	}
	if got[1].OfAssistant == nil {
		t.Error("second message should be an assistant message")
	}
	if got[2].OfUser == nil {
		t.Error("third message should be a user message")
	}

	imageMsg := got[3].OfUser
	if imageMsg == nil {
		t.Fatal("fourth message should be a user message")
	}
	parts := imageMsg.Content.OfArrayOfContentParts
	if len(parts) != 2 {
		t.Fatalf("image message has %d parts, want 2", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != "with image" {
		t.Error("first part should carry the text")
	}
	if parts[1].OfImageURL == nil {
		t.Error("second part should carry the image URL")
	}
}
