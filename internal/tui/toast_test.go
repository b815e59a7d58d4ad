package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func TestToast_Lifecycle(t *testing.T) {
	var zero toast
	if zero.isActive() || zero.render() != "" {
		t.Error("zero toast should be inactive")
	}

	tt := newToast("已复制", toastSuccess)
	if !tt.isActive() {
		t.Error("new toast should be active")
	}
	if !strings.Contains(tt.render(), "已复制") {
		t.Error("render should include the message")
	}

	tt.expires = time.Now().Add(-time.Second)
	if tt.isActive() {
		t.Error("expired toast should be inactive")
	}
}

func TestToast_IDsIncrease(t *testing.T) {
	a := newToast("a", toastInfo)
	b := newErrorToast(domain.NewTimeout(""), toastOptions{}, false)
	if b.id <= a.id {
		t.Errorf("ids should increase: %d then %d", a.id, b.id)
	}
}

func TestNewErrorToast_Expiry(t *testing.T) {
	sticky := newErrorToast(domain.NewTimeout(""), toastOptions{}, false)
	if !sticky.expires.IsZero() || !sticky.isActive() {
		t.Error("sticky error toast should stay active")
	}
	auto := newErrorToast(domain.NewBadRequest(""), toastOptions{}, true)
	if auto.expires.IsZero() {
		t.Error("auto-dismiss toast should expire")
	}
}

func TestRenderErrorToast(t *testing.T) {
	withDetails := domain.NewValidation("")
	withDetails.Details = "slug: too long"
	withDetails.HTTPStatus = 422
	withDetails.RequestID = "req-1"

	tests := []struct {
		name    string
		err     *domain.APIError
		opts    toastOptions
		want    []string
		notWant []string
	}{
		{
			name:    "retryable offers retry",
			err:     domain.NewTimeout(""),
			opts:    toastOptions{Title: "加载失败", Dismissible: true},
			want:    []string{"加载失败", domain.DefaultMessage(domain.Timeout), "[r] 重试", "[esc] 关闭"},
			notWant: []string{"错误代码"},
		},
		{
			name:    "non-retryable hides retry",
			err:     domain.NewNotFound("项目"),
			opts:    toastOptions{},
			want:    []string{"项目不存在"},
			notWant: []string{"[r] 重试", "[esc] 关闭"},
		},
		{
			name: "force retry",
			err:  domain.NewNotFound(""),
			opts: toastOptions{ForceRetry: true},
			want: []string{"[r] 重试"},
		},
		{
			name: "dev shows details and code",
			err:  withDetails,
			opts: toastOptions{ShowDetails: true, Dev: true},
			want: []string{"错误详情: slug: too long", "VALIDATION_ERROR (HTTP 422)", "请求ID: req-1"},
		},
		{
			name: "english built-in message",
			err:  domain.NewTimeout(""),
			opts: toastOptions{Locale: domain.LocaleEN},
			want: []string{domain.MessageFor(domain.Timeout, domain.LocaleEN)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := renderErrorToast(tc.err, tc.opts)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}

	if renderErrorToast(nil, toastOptions{}) != "" {
		t.Error("nil error should render nothing")
	}
}

func TestLocalizedMessage_KeepsServerText(t *testing.T) {
	err := domain.NewBadRequest("参数缺失: slug")
	if got := localizedMessage(err, domain.LocaleEN); got != "参数缺失: slug" {
		t.Errorf("server message should pass through, got %q", got)
	}
}
