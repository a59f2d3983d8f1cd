package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/app/system/mailer"
	"github.com/dalemusser/duasite/internal/app/system/tasks"
	"go.uber.org/zap"
)

type fakeLocator struct {
	loc geoip.Location
	err error
}

func (f fakeLocator) Lookup(ctx context.Context, ip string) (geoip.Location, error) {
	return f.loc, f.err
}

type fakeSetter struct {
	calls   int
	session string
	loc     geoip.Location
}

func (f *fakeSetter) SetLocation(ctx context.Context, sessionID string, loc geoip.Location) error {
	f.calls++
	f.session = sessionID
	f.loc = loc
	return nil
}

func TestGeoEnrichJob_PatchesRecord(t *testing.T) {
	set := &fakeSetter{}
	loc := geoip.Location{Country: "Bangladesh", City: "Dhaka", Region: "Dhaka Division"}
	job := tasks.GeoEnrichJob(fakeLocator{loc: loc}, set, "s-1", "203.0.113.5", zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if set.calls != 1 || set.session != "s-1" || set.loc != loc {
		t.Errorf("SetLocation got calls=%d session=%q loc=%+v", set.calls, set.session, set.loc)
	}
}

func TestGeoEnrichJob_SkippedAddressIsQuiet(t *testing.T) {
	set := &fakeSetter{}
	job := tasks.GeoEnrichJob(fakeLocator{err: geoip.ErrSkipped}, set, "s-1", "127.0.0.1", zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("skipped lookup should not error, got %v", err)
	}
	if set.calls != 0 {
		t.Error("skipped lookup must not patch the record")
	}
}

func TestGeoEnrichJob_LookupFailureReturned(t *testing.T) {
	set := &fakeSetter{}
	job := tasks.GeoEnrichJob(fakeLocator{err: errors.New("boom")}, set, "s-1", "203.0.113.5", zap.NewNop())

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected lookup failure to be returned to the queue")
	}
	if set.calls != 0 {
		t.Error("failed lookup must not patch the record")
	}
}

type fakeSender struct{ got []mailer.Email }

func (f *fakeSender) Send(ctx context.Context, e mailer.Email) error {
	f.got = append(f.got, e)
	return nil
}

func TestContactNotifyJob(t *testing.T) {
	s := &fakeSender{}
	e := mailer.Email{To: "inbox@duabd.org", Subject: "New message"}
	if err := tasks.ContactNotifyJob(s, e).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.got) != 1 || s.got[0].To != e.To {
		t.Errorf("sent %+v", s.got)
	}
}
