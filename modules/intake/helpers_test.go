package intake_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Meciahacks/mindful-reach-clinic-01260/modules/intake"
)

// fakeChannel records calls and returns a canned result.
type fakeChannel struct {
	id      intake.ChannelID
	receipt intake.Receipt
	err     error
	ready   error
	panics  bool
	block   chan struct{}

	calls atomic.Int32
	mu    sync.Mutex
	got   []intake.Record
	html  []string
	ctxOK []bool
	tests []string
}

func newFake(id intake.ChannelID) *fakeChannel {
	return &fakeChannel{id: id, receipt: intake.Receipt{MessageID: string(id) + "-id"}}
}

func (f *fakeChannel) ID() intake.ChannelID { return f.id }

func (f *fakeChannel) Ready() error { return f.ready }

func (f *fakeChannel) Send(ctx context.Context, rec intake.Record, html string) (intake.Receipt, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.panics {
		panic("adapter exploded")
	}
	f.mu.Lock()
	f.got = append(f.got, rec)
	f.html = append(f.html, html)
	f.ctxOK = append(f.ctxOK, ctx.Err() == nil)
	f.mu.Unlock()
	if f.err != nil {
		return intake.Receipt{}, f.err
	}
	return f.receipt, nil
}

func (f *fakeChannel) SendTest(_ context.Context, to, subject, html string) (intake.Receipt, error) {
	f.mu.Lock()
	f.tests = append(f.tests, to+"|"+subject)
	f.mu.Unlock()
	if f.err != nil {
		return intake.Receipt{}, f.err
	}
	return f.receipt, nil
}

// sheetOnly is a Channel without SendTest.
type sheetOnly struct{ *fakeChannel }

func (s sheetOnly) SendTest() {}

var errBoom = errors.New("boom")

func validSubmission() map[string]any {
	return map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "",
		"message": "Hello\nWorld",
	}
}
