// ABOUTME: Team chat CLI commands: directory, messages, send text/file
package cli

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// ChatCommand lists channels and users, shows a chat, or sends into one.
func ChatCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	chatID := fs.String("chat", "", "Channel or user id")
	chatType := fs.String("type", "channel", "Chat type: channel or user")
	send := fs.String("send", "", "Message text to send")
	file := fs.String("file", "", "File path to send")
	_ = fs.Parse(args)

	ctx := context.Background()

	if *chatID == "" {
		return printChatDirectory(ctx, app)
	}

	if *send != "" {
		msg, err := app.API.SendChatMessage(ctx, *chatID, *chatType, *send)
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
		if msg != nil {
			fmt.Printf("✓ Sent (id %s)\n", msg.ID)
		} else {
			fmt.Println("✓ Sent")
		}
		return nil
	}

	if *file != "" {
		return sendChatFile(ctx, app, *chatID, *chatType, *file)
	}

	messages, err := app.API.FetchChatMessages(ctx, *chatID, *chatType)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	if len(messages) == 0 {
		fmt.Println("No messages")
		return nil
	}
	for _, msg := range messages {
		fmt.Printf("[%s] %s: %s\n", formatMessageTime(msg.Timestamp), msg.SenderName, msg.Text)
		for _, att := range msg.Attachments {
			fmt.Printf("    📎 %s %s\n", att.Name, att.URL)
		}
	}
	return nil
}

func printChatDirectory(ctx context.Context, app *App) error {
	channels, users, err := app.API.FetchChatData(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chat data: %w", err)
	}
	fmt.Println("Channels:")
	for _, ch := range channels {
		marker := ""
		if ch.IsGeneral {
			marker = " (general)"
		}
		fmt.Printf("  %s  #%s%s\n", ch.ID, ch.Name, marker)
	}
	fmt.Println("Users:")
	for _, u := range users {
		fmt.Printf("  %s  %s\n", u.ID, u.Name)
	}
	return nil
}

func sendChatFile(ctx context.Context, app *App, chatID, chatType, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	name := filepath.Base(path)
	fileType := mime.TypeByExtension(filepath.Ext(path))
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	msg, err := app.API.SendChatFile(ctx, chatID, chatType, name, fileType,
		base64.StdEncoding.EncodeToString(data))
	if err != nil {
		return fmt.Errorf("failed to send file: %w", err)
	}
	if msg != nil {
		fmt.Printf("✓ File sent (id %s)\n", msg.ID)
	} else {
		fmt.Println("✓ File sent")
	}
	return nil
}
