package handlers

import "testing"

func TestValidateWorkingDay(t *testing.T) {
	cases := []struct {
		name    string
		day     WorkingDayConfig
		wantErr bool
	}{
		{
			name: "plain window",
			day:  WorkingDayConfig{Active: true, StartTime: "09:00", EndTime: "18:00"},
		},
		{
			name: "window with lunch",
			day: WorkingDayConfig{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				LunchStart: "12:00", LunchEnd: "13:00",
			},
		},
		{
			name: "inactive day skips validation",
			day:  WorkingDayConfig{Active: false},
		},
		{
			name:    "malformed start",
			day:     WorkingDayConfig{Active: true, StartTime: "9am", EndTime: "18:00"},
			wantErr: true,
		},
		{
			name:    "unpadded hour",
			day:     WorkingDayConfig{Active: true, StartTime: "9:00", EndTime: "18:00"},
			wantErr: true,
		},
		{
			name:    "missing end",
			day:     WorkingDayConfig{Active: true, StartTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "end before start",
			day:     WorkingDayConfig{Active: true, StartTime: "18:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name: "lunch start without end",
			day: WorkingDayConfig{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				LunchStart: "12:00",
			},
			wantErr: true,
		},
		{
			name: "lunch outside window",
			day: WorkingDayConfig{
				Active: true, StartTime: "09:00", EndTime: "12:00",
				LunchStart: "12:30", LunchEnd: "13:00",
			},
			wantErr: true,
		},
		{
			name: "inverted lunch",
			day: WorkingDayConfig{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				LunchStart: "13:00", LunchEnd: "12:00",
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateWorkingDay(tc.day)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateWorkingDay(%+v) error = %v, wantErr %v", tc.day, err, tc.wantErr)
			}
		})
	}
}
