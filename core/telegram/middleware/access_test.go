package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

type senderContext struct {
	tele.Context
	sender *tele.User
}

func (s *senderContext) Sender() *tele.User { return s.sender }

func callAdminGate(t *testing.T, opts AdminOptions, senderID int64) (nextCalled, rejected bool) {
	t.Helper()
	opts.OnReject = func(tele.Context) error {
		rejected = true
		return nil
	}
	next := func(tele.Context) error {
		nextCalled = true
		return nil
	}
	c := &senderContext{sender: &tele.User{ID: senderID}}
	if err := AdminOnlyMiddleware(opts)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return nextCalled, rejected
}

func TestAdminGatePassesOperator(t *testing.T) {
	nextCalled, rejected := callAdminGate(t, AdminOptions{AdminID: 77}, 77)
	if !nextCalled || rejected {
		t.Fatalf("operator must pass: next=%v rejected=%v", nextCalled, rejected)
	}
}

func TestAdminGateRejectsOtherUsers(t *testing.T) {
	nextCalled, rejected := callAdminGate(t, AdminOptions{AdminID: 77}, 78)
	if nextCalled || !rejected {
		t.Fatalf("non-operator must be rejected: next=%v rejected=%v", nextCalled, rejected)
	}
}

func TestAdminGateFailsClosedWithoutOperator(t *testing.T) {
	// No configured operator means nobody passes, not everybody.
	nextCalled, rejected := callAdminGate(t, AdminOptions{AdminID: 0}, 78)
	if nextCalled || !rejected {
		t.Fatalf("unconfigured gate must reject: next=%v rejected=%v", nextCalled, rejected)
	}
}

func TestAdminGateRejectsMissingSender(t *testing.T) {
	var rejected bool
	mw := AdminOnlyMiddleware(AdminOptions{AdminID: 77, OnReject: func(tele.Context) error {
		rejected = true
		return nil
	}})
	next := func(tele.Context) error {
		t.Fatal("next must not run without a sender")
		return nil
	}
	if err := mw(next)(&senderContext{}); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !rejected {
		t.Fatal("missing sender must be rejected")
	}
}
