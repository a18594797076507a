package screening

import (
	"testing"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

func testRefs() types.ReferenceItems {
	return types.NewReferenceItems([]int64{50813}, []int64{50820})
}

func TestIsAbnormal_Lactate(t *testing.T) {
	refs := testRefs()
	th := DefaultThresholds()

	cases := []struct {
		name  string
		value float64
		want  bool
	}{
		{"well above cutoff", 6.0, true},
		{"just above cutoff", 4.01, true},
		{"exactly at cutoff", 4.0, false},
		{"normal", 1.2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAbnormal(50813, tc.value, refs, th); got != tc.want {
				t.Errorf("IsAbnormal(lactate, %v): got %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsAbnormal_PH(t *testing.T) {
	refs := testRefs()
	th := DefaultThresholds()

	cases := []struct {
		name  string
		value float64
		want  bool
	}{
		{"acidotic", 7.20, true},
		{"exactly at cutoff", 7.35, true},
		{"just above cutoff", 7.36, false},
		{"normal", 7.40, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAbnormal(50820, tc.value, refs, th); got != tc.want {
				t.Errorf("IsAbnormal(ph, %v): got %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsAbnormal_UnknownItem(t *testing.T) {
	refs := testRefs()
	th := DefaultThresholds()

	// An item in neither reference set is never abnormal, however extreme
	// the value.
	if IsAbnormal(99999, 100.0, refs, th) {
		t.Error("IsAbnormal on unknown item: got true, want false")
	}
	if IsAbnormal(99999, 0.0, refs, th) {
		t.Error("IsAbnormal on unknown item: got true, want false")
	}
}

func TestIsAbnormal_ItemInBothSets(t *testing.T) {
	// An item in both sets is abnormal if either kind's condition holds.
	refs := types.NewReferenceItems([]int64{51000}, []int64{51000})
	th := DefaultThresholds()

	if !IsAbnormal(51000, 5.0, refs, th) {
		t.Error("dual-kind item with value 5.0: want abnormal (lactate > 4.0 or pH <= 7.35)")
	}
	if IsAbnormal(51000, 7.4, refs, th) {
		t.Error("dual-kind item with value 7.4: want normal")
	}
}

func TestIsAbnormal_CustomThresholds(t *testing.T) {
	refs := testRefs()
	th := Thresholds{LactateAbove: 2.0, PHAtOrBelow: 7.0}

	if !IsAbnormal(50813, 2.5, refs, th) {
		t.Error("lactate 2.5 with cutoff 2.0: want abnormal")
	}
	if IsAbnormal(50820, 7.2, refs, th) {
		t.Error("pH 7.2 with cutoff 7.0: want normal")
	}
}
