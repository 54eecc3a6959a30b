// Package whatsapp drives a logged-in WhatsApp Web session in Chromium and
// exposes it as a message channel. One Channel is one browser session; the
// account login lives in the browser profile, so the session survives
// restarts without re-scanning the QR code.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/services"
	"notifier/internal/core/ports"
)

const chatURL = "https://web.whatsapp.com/send?phone="

// WhatsApp Web selectors. These track the deployed web client and are the
// part of this adapter most likely to need maintenance.
const (
	composerSelector     = "div[contenteditable='true'][data-tab='10']"
	attachSelector       = "span[data-icon='clip']"
	pollButtonSelector   = "button[title='Poll']"
	pollQuestionSelector = "div[contenteditable='true'][data-testid='poll-question']"
	pollOptionSelector   = "div[contenteditable='true'][data-testid='poll-create-option']"
	fileInputSelector    = "input[type='file']"
	sendButtonSelector   = "span[data-icon='send']"
)

const defaultActionTimeout = 30 * time.Second

// Config holds browser channel configuration.
type Config struct {
	// DebuggerURL attaches to an already running Chromium with an open
	// DevTools port. Empty launches a fresh instance.
	DebuggerURL string

	// Headless controls the launched instance. Attaching via DebuggerURL
	// ignores this.
	Headless bool

	// ActionTimeout bounds every navigation and element lookup
	// (defaultActionTimeout when zero).
	ActionTimeout time.Duration
}

// Channel implements MessageChannel and MediaAttacher over WhatsApp Web.
//
// Calls are not safe for concurrent use: the channel mirrors a single
// browser window, and the pass drives it strictly one customer at a time.
type Channel struct {
	cfg     Config
	browser *rod.Browser
	page    *rod.Page
}

// NewChannel creates a channel with the given configuration. Call Connect
// before the first conversation and Shutdown when the process exits.
func NewChannel(cfg Config) *Channel {
	if cfg.ActionTimeout == 0 {
		cfg.ActionTimeout = defaultActionTimeout
	}
	return &Channel{cfg: cfg}
}

// Connect attaches to Chromium (launching one if no debugger URL is
// configured) and opens the page the conversations will run in.
func (c *Channel) Connect(ctx context.Context) error {
	controlURL := c.cfg.DebuggerURL
	if controlURL == "" {
		url, err := launcher.New().Headless(c.cfg.Headless).Launch()
		if err != nil {
			return errors.Join(ports.ErrChannelUnavailable, err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return errors.Join(ports.ErrChannelUnavailable, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return errors.Join(ports.ErrChannelUnavailable, err)
	}

	c.browser = browser
	c.page = page
	return nil
}

// Shutdown closes the browser connection. A launched instance exits; an
// attached one keeps running with its login intact.
func (c *Channel) Shutdown() error {
	if c.browser == nil {
		return nil
	}

	err := c.browser.Close()
	c.browser = nil
	c.page = nil
	return err
}

// Open navigates to the conversation with the given phone number and waits
// until the message composer is interactive. WhatsApp renders the composer
// only for numbers registered on the platform, so a missing composer within
// the timeout means this customer cannot be reached.
func (c *Channel) Open(ctx context.Context, phone kernel.Phone) error {
	if c.page == nil {
		return ports.ErrChannelUnavailable
	}

	if err := c.pageIn(ctx).Navigate(chatURL + phone.Digits()); err != nil {
		return fmt.Errorf("open conversation for %s: %w", phone, errors.Join(ports.ErrChannelUnavailable, err))
	}

	if _, err := c.element(ctx, composerSelector); err != nil {
		return fmt.Errorf("conversation for %s has no composer: %w", phone, err)
	}
	return nil
}

// Send injects the message text into the composer and submits it. The text
// is inserted in one operation so embedded newlines stay line breaks
// instead of submitting the message early.
func (c *Channel) Send(ctx context.Context, text string) error {
	if c.page == nil {
		return ports.ErrChannelUnavailable
	}

	box, err := c.element(ctx, composerSelector)
	if err != nil {
		return fmt.Errorf("message composer: %w", err)
	}
	if err = box.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("focus composer: %w", err)
	}

	if err = c.pageIn(ctx).InsertText(text); err != nil {
		return fmt.Errorf("insert message text: %w", err)
	}
	if err = c.page.Keyboard.Press(input.Enter); err != nil {
		return fmt.Errorf("submit message: %w", err)
	}
	return nil
}

// AttachPoll creates a poll in the open conversation and sends it.
func (c *Channel) AttachPoll(ctx context.Context, poll services.Poll) error {
	if c.page == nil {
		return ports.ErrChannelUnavailable
	}

	if err := c.click(ctx, attachSelector); err != nil {
		return fmt.Errorf("open attach menu: %w", err)
	}
	if err := c.click(ctx, pollButtonSelector); err != nil {
		return fmt.Errorf("open poll dialog: %w", err)
	}

	question, err := c.element(ctx, pollQuestionSelector)
	if err != nil {
		return fmt.Errorf("poll question field: %w", err)
	}
	if err = question.Input(poll.Question); err != nil {
		return fmt.Errorf("fill poll question: %w", err)
	}

	fields, err := c.pageIn(ctx).Elements(pollOptionSelector)
	if err != nil {
		return fmt.Errorf("poll option fields: %w", errors.Join(ports.ErrChannelUnavailable, err))
	}
	if len(fields) < len(poll.Options) {
		return fmt.Errorf("poll dialog offers %d option fields, need %d", len(fields), len(poll.Options))
	}
	for i, option := range poll.Options {
		if err = fields[i].Input(option); err != nil {
			return fmt.Errorf("fill poll option %q: %w", option, err)
		}
	}

	if err = c.click(ctx, sendButtonSelector); err != nil {
		return fmt.Errorf("send poll: %w", err)
	}
	return nil
}

// AttachMedia uploads the file at path into the open conversation and sends
// it as a separate message after the text.
func (c *Channel) AttachMedia(ctx context.Context, path string) error {
	if c.page == nil {
		return ports.ErrChannelUnavailable
	}

	if err := c.click(ctx, attachSelector); err != nil {
		return fmt.Errorf("open attach menu: %w", err)
	}

	fileInput, err := c.element(ctx, fileInputSelector)
	if err != nil {
		return fmt.Errorf("file input: %w", err)
	}
	if err = fileInput.SetFiles([]string{path}); err != nil {
		return fmt.Errorf("select file %s: %w", path, err)
	}

	if err = c.click(ctx, sendButtonSelector); err != nil {
		return fmt.Errorf("send attachment: %w", err)
	}
	return nil
}

// Close leaves the current conversation. Escape dismisses any half-open
// dialog so the next Open starts from a clean window.
func (c *Channel) Close(ctx context.Context) error {
	if c.page == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.page.Keyboard.Press(input.Escape)
}

func (c *Channel) pageIn(ctx context.Context) *rod.Page {
	return c.page.Context(ctx).Timeout(c.cfg.ActionTimeout)
}

// element waits for the selector within the action timeout. A miss means
// the conversation cannot be driven right now, so the sentinel is joined
// onto the lookup error for callers classifying channel faults.
func (c *Channel) element(ctx context.Context, selector string) (*rod.Element, error) {
	el, err := c.pageIn(ctx).Element(selector)
	if err != nil {
		return nil, errors.Join(ports.ErrChannelUnavailable, err)
	}
	return el, nil
}

func (c *Channel) click(ctx context.Context, selector string) error {
	el, err := c.element(ctx, selector)
	if err != nil {
		return err
	}
	if err = el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Join(ports.ErrChannelUnavailable, err)
	}
	return nil
}
