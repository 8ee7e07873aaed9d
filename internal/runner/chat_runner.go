package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// ExitCommand はチャットを終了する入力なのだ。
const ExitCommand = "/exit"

// ChatRunner は対話型チャットの契約なのだ。
type ChatRunner interface {
	Run(ctx context.Context) error
}

// Conversation は REPL が操作する会話なのだ。
type Conversation interface {
	Open()
	Send(ctx context.Context, text string) (string, error)
	Messages() []domain.ChatMessage
}

// REPLChatRunner は1行を1発言として読み、応答を1件ずつ書き出すのだ。
type REPLChatRunner struct {
	conv Conversation
	in   io.Reader
	out  io.Writer
}

// NewREPLChatRunner は、REPLChatRunner の新しいインスタンスを生成して返すのだ。
func NewREPLChatRunner(conv Conversation, in io.Reader, out io.Writer) *REPLChatRunner {
	return &REPLChatRunner{conv: conv, in: in, out: out}
}

// Run は挨拶を表示し、EOF か /exit まで入力を処理するのだ。
// 応答の失敗は会話ログのお詫びとして表示し、ループは続けるのだ。
func (r *REPLChatRunner) Run(ctx context.Context) error {
	r.conv.Open()
	for _, m := range r.conv.Messages() {
		if m.Sender == domain.SenderBot {
			fmt.Fprintf(r.out, "bot> %s\n", m.Text)
		}
	}

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == ExitCommand {
			return nil
		}
		if line == "" {
			continue
		}

		// 失敗時もお詫びが返るので、そのまま表示するのだ
		reply, _ := r.conv.Send(ctx, line)
		fmt.Fprintf(r.out, "bot> %s\n", reply)
	}
}
