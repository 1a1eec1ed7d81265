package nvsmi

import "testing"

func TestClassifyBands(t *testing.T) {
	th := Thresholds{Warn: 70, Crit: 90}

	cases := []struct {
		temp int
		want Band
	}{
		{0, BandNormal},
		{69, BandNormal},
		{70, BandWarning}, // boundary: at warn is warning
		{89, BandWarning},
		{90, BandCritical}, // boundary: at crit is critical
		{120, BandCritical},
		{-10, BandNormal},
	}
	for _, tc := range cases {
		if got := th.Classify(tc.temp); got != tc.want {
			t.Errorf("Classify(%d) = %v, want %v", tc.temp, got, tc.want)
		}
	}
}

func TestBandString(t *testing.T) {
	if BandNormal.String() != "normal" {
		t.Errorf("BandNormal.String() = %q", BandNormal.String())
	}
	if BandWarning.String() != "warning" {
		t.Errorf("BandWarning.String() = %q", BandWarning.String())
	}
	if BandCritical.String() != "critical" {
		t.Errorf("BandCritical.String() = %q", BandCritical.String())
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := (Thresholds{Warn: 70, Crit: 90}).Validate(); err != nil {
		t.Errorf("ordered thresholds should validate: %v", err)
	}
	if err := (Thresholds{Warn: 90, Crit: 70}).Validate(); err == nil {
		t.Error("inverted thresholds should not validate")
	}
	if err := (Thresholds{Warn: 80, Crit: 80}).Validate(); err == nil {
		t.Error("equal thresholds should not validate")
	}
}
