package monthpicker

import "testing"

func TestDisableBefore(t *testing.T) {
	rule := DisableBefore(MonthYear(3, 2020))

	tests := []struct {
		sel  Selection
		want bool
	}{
		{MonthYear(2, 2020), true},
		{MonthYear(3, 2020), false},
		{MonthYear(4, 2020), false},
		{MonthYear(11, 2019), true},
		{MonthYear(0, 2021), false},
		{MonthOnly(2), true},
		{MonthOnly(5), false},
	}

	for _, tt := range tests {
		if got := rule(tt.sel); got != tt.want {
			t.Errorf("DisableBefore()(%+v) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestDisableAfter(t *testing.T) {
	rule := DisableAfter(MonthYear(5, 2030))

	tests := []struct {
		sel  Selection
		want bool
	}{
		{MonthYear(5, 2030), false},
		{MonthYear(6, 2030), true},
		{MonthYear(0, 2031), true},
		{MonthYear(11, 2029), false},
	}

	for _, tt := range tests {
		if got := rule(tt.sel); got != tt.want {
			t.Errorf("DisableAfter()(%+v) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestDisableAfter_YearOnly(t *testing.T) {
	rule := DisableAfter(YearOnly(2030))

	if rule(YearOnly(2030)) {
		t.Error("DisableAfter(2030)(2030) = true, want false")
	}
	if !rule(YearOnly(2031)) {
		t.Error("DisableAfter(2030)(2031) = false, want true")
	}
}

func TestDisableMonths(t *testing.T) {
	rule := DisableMonths(0, 11)

	if !rule(MonthYear(0, 2024)) || !rule(MonthOnly(11)) {
		t.Error("DisableMonths(0, 11) should disable January and December")
	}
	if rule(MonthYear(6, 2024)) {
		t.Error("DisableMonths(0, 11) should not disable July")
	}
}

func TestDisableYears(t *testing.T) {
	rule := DisableYears(2020, 2021)

	if !rule(MonthYear(4, 2020)) || !rule(YearOnly(2021)) {
		t.Error("DisableYears(2020, 2021) should disable 2020 and 2021")
	}
	if rule(YearOnly(2022)) {
		t.Error("DisableYears(2020, 2021) should not disable 2022")
	}
	if rule(MonthOnly(4)) {
		t.Error("DisableYears() should never disable a year-less selection")
	}
}

func TestAnyRule(t *testing.T) {
	rule := AnyRule(nil, DisableMonths(1), DisableYears(1999))

	tests := []struct {
		sel  Selection
		want bool
	}{
		{MonthYear(1, 2024), true},
		{MonthYear(5, 1999), true},
		{MonthYear(5, 2024), false},
	}

	for _, tt := range tests {
		if got := rule(tt.sel); got != tt.want {
			t.Errorf("AnyRule()(%+v) = %v, want %v", tt.sel, got, tt.want)
		}
	}

	if AnyRule()(MonthYear(0, 2024)) {
		t.Error("AnyRule() with no rules should disable nothing")
	}
}

func TestDisabledRule_IsPure(t *testing.T) {
	rule := AnyRule(DisableBefore(MonthYear(0, 2020)), DisableMonths(6))
	sel := MonthYear(6, 2021)

	first := rule(sel)
	for i := 0; i < 10; i++ {
		if rule(sel) != first {
			t.Fatal("rule result changed between calls")
		}
	}
}
