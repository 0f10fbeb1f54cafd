// ABOUTME: Team chat actions: channels/users, per-chat messages, send text and files
package api

import (
	"context"
	"encoding/json"

	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/normalize"
)

// FetchChatData loads the channel and user directory.
func (c *Client) FetchChatData(ctx context.Context) ([]models.ChatChannel, []models.ChatUser, error) {
	raw, err := c.wh.Do(ctx, "getChatData", nil)
	if err != nil {
		return nil, nil, err
	}
	tree := normalize.FromJSON(raw)
	var channels []models.ChatChannel
	var users []models.ChatUser
	decodeRecords(normalize.Records(tree, "channels"), &channels)
	decodeRecords(normalize.Records(tree, "users"), &users)
	return channels, users, nil
}

// FetchChatMessages loads the messages of one channel or DM.
func (c *Client) FetchChatMessages(ctx context.Context, chatID, chatType string) ([]models.ChatMessage, error) {
	raw, err := c.wh.Do(ctx, "getChatMessages", map[string]string{"chatId": chatID, "chatType": chatType})
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	decodeRecords(normalize.RecordsJSON(raw, "messages"), &messages)
	return messages, nil
}

// SendChatMessage posts a text message and returns the stored copy.
func (c *Client) SendChatMessage(ctx context.Context, chatID, chatType, text string) (*models.ChatMessage, error) {
	raw, err := c.wh.Do(ctx, "sendChatMessage", map[string]string{
		"chatId":   chatID,
		"chatType": chatType,
		"text":     text,
	})
	if err != nil {
		return nil, err
	}
	return decodeChatMessage(raw)
}

// SendChatFile posts a file (base64 content) and returns the stored message.
func (c *Client) SendChatFile(ctx context.Context, chatID, chatType, fileName, fileType, dataB64 string) (*models.ChatMessage, error) {
	raw, err := c.wh.Do(ctx, "sendChatFile", map[string]string{
		"chatId":   chatID,
		"chatType": chatType,
		"fileName": fileName,
		"fileType": fileType,
		"data":     dataB64,
	})
	if err != nil {
		return nil, err
	}
	return decodeChatMessage(raw)
}

func decodeChatMessage(raw json.RawMessage) (*models.ChatMessage, error) {
	rec := normalize.ObjectJSON(raw, "message")
	if rec == nil {
		return nil, nil
	}
	var messages []models.ChatMessage
	decodeRecords([]models.Record{rec}, &messages)
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// decodeRecords re-marshals open records into a typed slice, dropping
// elements that do not fit.
func decodeRecords[T any](recs []models.Record, out *[]T) {
	*out = make([]T, 0, len(recs))
	for _, rec := range recs {
		b, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		var item T
		if err := json.Unmarshal(b, &item); err != nil {
			continue
		}
		*out = append(*out, item)
	}
}
