package erniechat

import (
	"context"

	oai "github.com/sashabaranov/go-openai"
)

// version is the erniechat code version.
var version = "0.1.0"

// CodeVersion returns the version of the erniechat code.
func CodeVersion() string {
	return version
}

// Msg sends sysmsg and txt to the service as a single exchange and
// returns the assistant's reply text.  sysmsg may be empty, in which
// case only the user message is sent.
func (c *Client) Msg(ctx context.Context, model, sysmsg, txt string) (reply string, err error) {
	var messages []oai.ChatCompletionMessage
	if sysmsg != "" {
		messages = append(messages, oai.ChatCompletionMessage{
			Role:    oai.ChatMessageRoleSystem,
			Content: sysmsg,
		})
	}
	messages = append(messages, oai.ChatCompletionMessage{
		Role:    oai.ChatMessageRoleUser,
		Content: txt,
	})

	req := &ChatRequest{
		ChatCompletionRequest: oai.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
		},
	}
	resp, err := c.CompleteChat(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &APIError{Kind: KindDecode, Message: "no choices in response"}
	}
	reply = resp.Choices[0].Message.Content
	return
}
