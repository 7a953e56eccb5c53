package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var (
	adminNotificationTmpl = template.Must(template.New("admin_notification").Parse(AdminNotificationTemplate))
	approvalTmpl          = template.Must(template.New("approval").Parse(ApprovalTemplate))
	resetPasswordTmpl     = template.Must(template.New("reset_password").Parse(ResetPasswordTemplate))
)

// AdminNotificationTemplate 新用户注册待审核通知
const AdminNotificationTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>新用户注册待审核</h2>
    <p>有新用户完成注册，正在等待您的审核。</p>
    <ul>
        <li><strong>邮箱：</strong>{{.Email}}</li>
        <li><strong>姓名：</strong>{{if .Name}}{{.Name}}{{else}}未填写{{end}}</li>
    </ul>
    <p>登录管理后台完成审核：<a href="{{.ApprovalURL}}">前往审核</a></p>
</body>
</html>
`

// AdminNotificationData 待审核通知模板数据
type AdminNotificationData struct {
	Email       string
	Name        string
	ApprovalURL string
}

// ApprovalTemplate 账号审核通过欢迎邮件
const ApprovalTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>欢迎加入 {{.AppName}}，{{if .Name}}{{.Name}}{{else}}同学{{end}}！</h2>
    <p>您的账号已通过管理员审核，现在可以登录并开始学习。</p>
    <a href="{{.LoginURL}}" style="display: inline-block; padding: 12px 24px; background-color: #4f46e5;
       color: white; text-decoration: none; border-radius: 8px; font-weight: bold; margin: 20px 0;">立即登录</a>
</body>
</html>
`

// ApprovalData 审核通过模板数据
type ApprovalData struct {
	AppName  string
	Name     string
	LoginURL string
}

// ResetPasswordTemplate 重置密码链接邮件
const ResetPasswordTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
        <h2>重置密码</h2>
        <p>我们收到了重置您 {{.AppName}} 账号密码的请求。</p>
        <p>点击下方按钮设置新密码，链接将在 {{.ExpireMinutes}} 分钟后失效。</p>
        <div style="text-align: center; margin: 32px 0;">
            <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 28px; background-color: #4f46e5;
               color: white; text-decoration: none; border-radius: 10px; font-weight: bold;">重置密码</a>
        </div>
        <p style="color: #94a3b8; font-size: 14px;">如果这不是您的操作，请忽略此邮件。</p>
        <p style="font-size: 12px; color: #94a3b8;">按钮无法点击时，请复制以下链接到浏览器打开：</p>
        <p style="font-size: 12px; color: #4f46e5; word-break: break-all;">{{.ResetURL}}</p>
    </div>
</body>
</html>
`

// ResetPasswordData 重置密码模板数据
type ResetPasswordData struct {
	AppName       string
	ResetURL      string
	ExpireMinutes int
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendAdminNotification 通知管理员有新用户等待审核
func (c *Client) SendAdminNotification(ctx context.Context, adminEmail string, data AdminNotificationData) error {
	body, err := render(adminNotificationTmpl, data)
	if err != nil {
		return err
	}
	return c.SendHTML(ctx, adminEmail, "新用户注册待审核", body)
}

// SendApproval 发送审核通过欢迎邮件
func (c *Client) SendApproval(ctx context.Context, to string, data ApprovalData) error {
	body, err := render(approvalTmpl, data)
	if err != nil {
		return err
	}
	return c.SendHTML(ctx, to, fmt.Sprintf("【%s】账号审核通过", data.AppName), body)
}

// SendPasswordReset 发送重置密码链接
func (c *Client) SendPasswordReset(ctx context.Context, to string, data ResetPasswordData) error {
	body, err := render(resetPasswordTmpl, data)
	if err != nil {
		return err
	}
	return c.SendHTML(ctx, to, fmt.Sprintf("【%s】重置密码", data.AppName), body)
}
