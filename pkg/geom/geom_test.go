package geom

import (
	"errors"
	"testing"
)

func TestLineOf(t *testing.T) {
	l, err := LineOf(Point{0, 2}, Point{2, 0})
	if err != nil {
		t.Fatalf("LineOf() error = %v", err)
	}
	if l.Slope != -1 || l.Intercept != 2 {
		t.Errorf("LineOf() = %+v, want slope -1 intercept 2", l)
	}

	// Point order does not matter.
	r, err := LineOf(Point{2, 0}, Point{0, 2})
	if err != nil {
		t.Fatalf("LineOf() error = %v", err)
	}
	if r != l {
		t.Errorf("LineOf(reversed) = %+v, want %+v", r, l)
	}
}

func TestLineOf_Vertical(t *testing.T) {
	_, err := LineOf(Point{1, 0}, Point{1, 5})
	if !errors.Is(err, ErrVertical) {
		t.Errorf("LineOf() error = %v, want ErrVertical", err)
	}
}

func TestSegmentsCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{
			name: "proper crossing",
			a:    Segment{Point{0, 0}, Point{2, 2}},
			b:    Segment{Point{0, 2}, Point{2, 0}},
			want: true,
		},
		{
			name: "proper crossing reversed endpoints",
			a:    Segment{Point{2, 2}, Point{0, 0}},
			b:    Segment{Point{2, 0}, Point{0, 2}},
			want: true,
		},
		{
			name: "lines meet outside segments",
			a:    Segment{Point{0, 0}, Point{1, 1}},
			b:    Segment{Point{3, 0}, Point{4, -1}},
			want: false,
		},
		{
			name: "endpoint touches the other segment",
			a:    Segment{Point{0, 0}, Point{1, 1}},
			b:    Segment{Point{0, 2}, Point{2, 0}},
			want: false,
		},
		{
			name: "parallel",
			a:    Segment{Point{0, 0}, Point{2, 2}},
			b:    Segment{Point{0, 1}, Point{2, 3}},
			want: false,
		},
		{
			name: "shared endpoint",
			a:    Segment{Point{8.5, -2}, Point{0, 2}},
			b:    Segment{Point{0, 2}, Point{2, 0}},
			want: false,
		},
		{
			name: "reference f-a against b-c",
			a:    Segment{Point{8.5, -2}, Point{0, 2}},
			b:    Segment{Point{2, 0}, Point{0.5, -2}},
			want: false,
		},
		{
			name: "reference a-e against b-d",
			a:    Segment{Point{0, 2}, Point{10, 0}},
			b:    Segment{Point{2, 0}, Point{8, 2}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SegmentsCross(tt.a, tt.b)
			if err != nil {
				t.Fatalf("SegmentsCross() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SegmentsCross() = %v, want %v", got, tt.want)
			}
			// Crossing is symmetric.
			rev, _ := SegmentsCross(tt.b, tt.a)
			if rev != got {
				t.Errorf("SegmentsCross(b, a) = %v, want %v", rev, got)
			}
		})
	}
}

func TestSegmentsCross_SharedEndpointNeverCrosses(t *testing.T) {
	shared := Point{0.5, -2}
	others := []Point{{0, 2}, {2, 0}, {8, 2}, {10, 0}, {8.5, -2}}
	for i, p := range others {
		for j, q := range others {
			if i == j {
				continue
			}
			got, err := SegmentsCross(Segment{shared, p}, Segment{q, shared})
			if err != nil {
				t.Fatalf("SegmentsCross() error = %v", err)
			}
			if got {
				t.Errorf("segments %v-%v and %v-%v reported crossing", shared, p, q, shared)
			}
		}
	}
}

// Collinear overlapping segments have equal slopes and are never reported.
// The reference topology has no three collinear nodes.
func TestIntersects_CollinearOverlapNotDetected(t *testing.T) {
	a := Segment{Point{0, 0}, Point{2, 2}}
	b := Segment{Point{1, 1}, Point{3, 3}}
	la, _ := a.Line()
	lb, _ := b.Line()
	if Intersects(la, a, lb, b) {
		t.Error("Intersects() = true for collinear overlap, want false")
	}
}

func TestSegmentsCross_Vertical(t *testing.T) {
	_, err := SegmentsCross(Segment{Point{1, 0}, Point{1, 2}}, Segment{Point{0, 0}, Point{2, 2}})
	if !errors.Is(err, ErrVertical) {
		t.Errorf("SegmentsCross() error = %v, want ErrVertical", err)
	}
}
