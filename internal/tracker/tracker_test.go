package tracker

import (
	"errors"
	"testing"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/models"
)

type ids []string

func (s *ids) CategoryIDs() []string { return append([]string(nil), *s...) }

type memPersister struct{ last string }

func (m *memPersister) SetLastCategory(id string) { m.last = id }

var geometry = []Section{{ID: "a", Top: 300}, {ID: "b", Top: 900}, {ID: "c", Top: 1500}}

func newTracker(opts ...Option) (*Tracker, *ids) {
	src := &ids{"a", "b", "c"}
	return New(src, opts...), src
}

func TestInitialStateIsAll(t *testing.T) {
	tr, _ := newTracker()
	if got := tr.Active(); got != models.AllCategories {
		t.Errorf("Active() = %q, want all", got)
	}
}

func TestOnScroll_TopThresholdForcesAll(t *testing.T) {
	tr, _ := newTracker()
	tr.Geometry([]Section{{ID: "a", Top: 0}, {ID: "b", Top: 10}})
	for _, top := range []float64{0, 50, 199} {
		if got, _ := tr.OnScroll(Viewport{ScrollTop: top}); got != models.AllCategories {
			t.Errorf("scrollTop %v: active = %q, want all", top, got)
		}
	}
}

func TestOnScroll_LastPassedSectionWins(t *testing.T) {
	tr, _ := newTracker()
	tr.Geometry(geometry)

	tests := []struct {
		scrollTop float64
		want      string
	}{
		{scrollTop: 200, want: "a"},  // center 360
		{scrollTop: 739, want: "a"},  // center 899
		{scrollTop: 740, want: "b"},  // center 900
		{scrollTop: 1200, want: "b"}, // center 1360
		{scrollTop: 1340, want: "c"},
		{scrollTop: 5000, want: "c"},
	}
	for _, tt := range tests {
		got, _ := tr.OnScroll(Viewport{ScrollTop: tt.scrollTop})
		if got != tt.want {
			t.Errorf("scrollTop %v: active = %q, want %q", tt.scrollTop, got, tt.want)
		}
	}
}

func TestOnScroll_ReportsChangeOnce(t *testing.T) {
	var calls []string
	tr, _ := newTracker(WithListener(func(a string) { calls = append(calls, a) }))
	tr.Geometry(geometry)

	if _, changed := tr.OnScroll(Viewport{ScrollTop: 800}); !changed {
		t.Error("first move into b should report change")
	}
	if _, changed := tr.OnScroll(Viewport{ScrollTop: 820}); changed {
		t.Error("staying in b should not report change")
	}
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("listener calls = %v, want [b]", calls)
	}
}

func TestOnScroll_SectionsInViewportReplaceGeometry(t *testing.T) {
	tr, _ := newTracker()
	tr.Geometry(geometry)
	got, _ := tr.OnScroll(Viewport{ScrollTop: 300, HeaderHeight: 60, Sections: []Section{{ID: "c", Top: 400}}})
	if got != "c" {
		t.Errorf("active = %q, want c", got)
	}
}

func TestOnScroll_UnknownSectionIgnored(t *testing.T) {
	tr, _ := newTracker()
	tr.Geometry([]Section{{ID: "ghost", Top: 0}, {ID: "a", Top: 300}})
	if got, _ := tr.OnScroll(Viewport{ScrollTop: 1000}); got != "a" {
		t.Errorf("active = %q, want a", got)
	}
}

func TestOnManualSelect(t *testing.T) {
	p := &memPersister{}
	tr, _ := newTracker(WithPersister(p))
	tr.Geometry(geometry)

	target, err := tr.OnManualSelect("b")
	if err != nil {
		t.Fatalf("OnManualSelect: %v", err)
	}
	if !target.Known || target.Top != 900-60-20 {
		t.Errorf("target = %+v, want top 820", target)
	}
	if tr.Active() != "b" || p.last != "b" {
		t.Errorf("active = %q, persisted = %q", tr.Active(), p.last)
	}

	target, err = tr.OnManualSelect(models.AllCategories)
	if err != nil {
		t.Fatalf("OnManualSelect(all): %v", err)
	}
	if target.Top != 0 || !target.Known {
		t.Errorf("all target = %+v, want top 0", target)
	}
}

func TestOnManualSelect_ClampsAndUnknownGeometry(t *testing.T) {
	tr, _ := newTracker()
	tr.Geometry([]Section{{ID: "a", Top: 30}})
	if target, _ := tr.OnManualSelect("a"); target.Top != 0 {
		t.Errorf("target = %+v, want clamped to 0", target)
	}
	if target, _ := tr.OnManualSelect("c"); target.Known {
		t.Errorf("target for section without geometry = %+v", target)
	}
	if tr.Active() != "c" {
		t.Errorf("active = %q, want c", tr.Active())
	}
}

func TestOnManualSelect_UnknownCategory(t *testing.T) {
	p := &memPersister{}
	tr, _ := newTracker(WithPersister(p))
	_, err := tr.OnManualSelect("zz")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if tr.Active() != models.AllCategories || p.last != "" {
		t.Error("failed select must not change state")
	}
}

func TestActiveFallsBackWhenCategoryRemoved(t *testing.T) {
	tr, src := newTracker()
	if _, err := tr.OnManualSelect("b"); err != nil {
		t.Fatal(err)
	}
	*src = ids{"a", "c"}
	if got := tr.Active(); got != models.AllCategories {
		t.Errorf("Active() = %q, want all after removal", got)
	}
}

func TestForget(t *testing.T) {
	var last string
	tr, _ := newTracker(WithListener(func(a string) { last = a }))
	tr.Geometry(geometry)
	tr.OnScroll(Viewport{ScrollTop: 1400})
	tr.Forget("c")
	if last != models.AllCategories {
		t.Errorf("listener got %q, want all", last)
	}
	if got, _ := tr.OnScroll(Viewport{ScrollTop: 1400}); got != "b" {
		t.Errorf("active = %q, want b once c's geometry is gone", got)
	}
}

func TestProgress(t *testing.T) {
	tr, _ := newTracker()

	tests := []struct {
		v         Viewport
		ratio     float64
		backToTop bool
	}{
		{v: Viewport{ScrollTop: 0, ScrollHeight: 2000, ClientHeight: 1000}, ratio: 0},
		{v: Viewport{ScrollTop: 500, ScrollHeight: 2000, ClientHeight: 1000}, ratio: 0.5, backToTop: true},
		{v: Viewport{ScrollTop: 300, ScrollHeight: 2000, ClientHeight: 1000}, ratio: 0.3},
		{v: Viewport{ScrollTop: 1500, ScrollHeight: 2000, ClientHeight: 1000}, ratio: 1, backToTop: true},
		{v: Viewport{ScrollTop: 400, ScrollHeight: 800, ClientHeight: 800}, ratio: 0, backToTop: true},
	}
	for _, tt := range tests {
		tr.OnScroll(tt.v)
		got := tr.Progress()
		if got.Ratio != tt.ratio || got.BackToTopVisible != tt.backToTop {
			t.Errorf("%+v: progress = %+v, want ratio %v visible %v", tt.v, got, tt.ratio, tt.backToTop)
		}
	}
}
