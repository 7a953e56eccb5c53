// Package ops 运维命令：审批管理员、导入课程、调整高级内容、重置密码。
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/register"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// readPassword 测试时替换，避免读取真实终端
var readPassword = term.ReadPassword

const usage = `用法: admin <命令> [参数]

命令:
  approve-admin             将配置中的管理员账号设为已审核
  inspect-admin             打印管理员账号信息
  seed -file <path>         从 yaml 文件导入或覆盖课程
  mark-premium <章节 id...> 将指定章节下的课时设为高级内容
  unlock-all                取消全部课时的高级标记
  set-password <email>      交互式重置用户密码
`

var ErrUsage = errors.New("参数错误")

// Curriculum 课程批量维护，由 topic.Repository 实现
type Curriculum interface {
	SeedSections(ctx context.Context, sections []topicModel.TopicSection) error
	MarkPremium(ctx context.Context, sectionIDs []string) (int64, error)
	UnlockAll(ctx context.Context) (int64, error)
}

type Operator struct {
	users      user.Store
	curriculum Curriculum
	adminEmail string
	out        io.Writer
}

func NewOperator(users user.Store, curriculum Curriculum, adminEmail string, out io.Writer) *Operator {
	return &Operator{users: users, curriculum: curriculum, adminEmail: adminEmail, out: out}
}

// Run 执行一条命令，args 不含程序名
func (o *Operator) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(o.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "approve-admin":
		return o.approveAdmin(ctx)
	case "inspect-admin":
		return o.inspectAdmin(ctx)
	case "seed":
		return o.seed(ctx, rest)
	case "mark-premium":
		return o.markPremium(ctx, rest)
	case "unlock-all":
		return o.unlockAll(ctx)
	case "set-password":
		return o.setPassword(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(o.out, usage)
		return nil
	default:
		fmt.Fprintf(o.out, "未知命令: %s\n\n%s", cmd, usage)
		return ErrUsage
	}
}

func (o *Operator) adminUser(ctx context.Context) (int, error) {
	if o.adminEmail == "" {
		return 0, errors.New("未配置 admin.email")
	}
	u, err := o.users.GetByEmail(ctx, o.adminEmail)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return 0, fmt.Errorf("管理员账号 %s 不存在，请先注册", o.adminEmail)
		}
		return 0, err
	}
	return u.ID, nil
}

func (o *Operator) approveAdmin(ctx context.Context) error {
	id, err := o.adminUser(ctx)
	if err != nil {
		return err
	}
	u, err := o.users.SetApproved(ctx, id, true)
	if err != nil {
		return fmt.Errorf("审核管理员失败: %w", err)
	}
	fmt.Fprintf(o.out, "管理员 %s 已审核\n", u.Email)
	return nil
}

func (o *Operator) inspectAdmin(ctx context.Context) error {
	id, err := o.adminUser(ctx)
	if err != nil {
		return err
	}
	u, err := o.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(u)
}

func (o *Operator) seed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(o.out)
	path := fs.String("file", "curriculum.yaml", "课程 yaml 文件")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	sections, err := LoadCurriculum(*path)
	if err != nil {
		return err
	}
	if err := o.curriculum.SeedSections(ctx, sections); err != nil {
		return fmt.Errorf("导入课程失败: %w", err)
	}

	subTopics := 0
	for _, s := range sections {
		subTopics += len(s.SubTopics)
	}
	fmt.Fprintf(o.out, "已导入 %d 个章节，%d 个课时\n", len(sections), subTopics)
	return nil
}

func (o *Operator) markPremium(ctx context.Context, sectionIDs []string) error {
	if len(sectionIDs) == 0 {
		fmt.Fprintln(o.out, "用法: admin mark-premium <章节 id...>")
		return ErrUsage
	}
	n, err := o.curriculum.MarkPremium(ctx, sectionIDs)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "已将 %d 个课时设为高级内容\n", n)
	return nil
}

func (o *Operator) unlockAll(ctx context.Context) error {
	n, err := o.curriculum.UnlockAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "已取消 %d 个课时的高级标记\n", n)
	return nil
}

func (o *Operator) setPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(o.out, "用法: admin set-password <email>")
		return ErrUsage
	}
	email := strings.TrimSpace(args[0])

	fmt.Fprint(o.out, "新密码: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(o.out)
	if err != nil {
		return fmt.Errorf("读取密码失败: %w", err)
	}
	if len(pw) < 6 || len(pw) > 72 {
		return errors.New("密码长度必须在6-72个字符之间")
	}

	hash, err := bcrypt.GenerateFromPassword(pw, register.PasswordCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	if err := o.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("用户 %s 不存在", email)
		}
		return err
	}
	fmt.Fprintf(o.out, "用户 %s 的密码已更新\n", email)
	return nil
}
