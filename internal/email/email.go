package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config 邮件服务配置
type Config struct {
	Host     string `koanf:"host"`     // SMTP 服务器地址，如 smtp.gmail.com
	Port     int    `koanf:"port"`     // SMTP 端口，通常 587 (STARTTLS) 或 465 (SSL)
	Username string `koanf:"username"` // 发件邮箱
	Password string `koanf:"password"` // 邮箱密码或应用专用密码
	UseTLS   bool   `koanf:"tls"`      // 465 端口直接使用 SSL
	From     string `koanf:"from"`     // 发件人显示名称，如 "PegaLearn <noreply@example.com>"
}

// Message 邮件消息
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	ContentType string // 默认 text/html
}

// Sender 负责把组装好的消息投递出去，gomail.Dialer 满足该接口
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client 邮件客户端
type Client struct {
	config *Config
	sender Sender
}

// NewClient 创建邮件客户端
func NewClient(config *Config) *Client {
	if config.Port == 0 {
		config.Port = 587
	}
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	d.SSL = config.UseTLS || config.Port == 465
	d.TLSConfig = &tls.Config{ServerName: config.Host}
	return &Client{config: config, sender: d}
}

// NewClientWithSender 使用自定义投递实现，测试时替换真实 SMTP
func NewClientWithSender(config *Config, sender Sender) *Client {
	return &Client{config: config, sender: sender}
}

// from 返回发件人，未配置显示名称时退回到用户名
func (c *Client) from() string {
	if c.config.From != "" {
		return c.config.From
	}
	return c.config.Username
}

// Send 发送邮件
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = c.from()
	}
	if msg.From == "" {
		return fmt.Errorf("发件人不能为空")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("收件人不能为空")
	}
	if msg.Subject == "" {
		return fmt.Errorf("邮件主题不能为空")
	}
	if msg.ContentType == "" {
		msg.ContentType = "text/html"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody(msg.ContentType, msg.Body)

	if err := c.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendHTML 发送 HTML 邮件（便捷方法）
func (c *Client) SendHTML(ctx context.Context, to string, subject string, htmlBody string) error {
	return c.Send(ctx, &Message{
		To:      []string{to},
		Subject: subject,
		Body:    htmlBody,
	})
}
