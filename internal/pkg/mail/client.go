package mail

import (
	"TaylorDAM/internal/api/config"
	"TaylorDAM/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

var ErrMailDisabled = errors.New("mail api key not configured")

// Message 发信请求体
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type Client struct {
	http    *resty.Client
	from    string
	appName string
	enabled bool
}

func NewClient(cfg config.MailConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.ApiURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return resp != nil && resp.StatusCode() >= 500
		})
	if cfg.ApiKey != "" {
		client.SetAuthToken(cfg.ApiKey)
	}
	logger.AttachResty(client, "mail")

	appName := cfg.AppName
	if appName == "" {
		appName = "TaylorDAM"
	}
	return &Client{
		http:    client,
		from:    cfg.From,
		appName: appName,
		enabled: cfg.ApiKey != "",
	}
}

// Send 投递一封邮件，非 2xx 视为失败
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if !c.enabled {
		return ErrMailDisabled
	}
	if msg.From == "" {
		msg.From = c.from
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send mail: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// SendInvitation 发送邀请邮件；未配置 key 时只打印链接，返回 false
func (c *Client) SendInvitation(ctx context.Context, data *InvitationData) (bool, error) {
	if data.AppName == "" {
		data.AppName = c.appName
	}
	if !c.enabled {
		log.InfoContext(ctx, "mail disabled, invitation link logged instead",
			"to", data.Email, "invite_url", data.InviteURL)
		return false, nil
	}

	msg, err := RenderInvitation(data)
	if err != nil {
		return false, err
	}
	msg.From = c.from
	if err = c.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}
