package model

import "testing"

func TestParseMissionStatus(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   MissionStatus
		wantOK bool
	}{
		{name: "canonical", raw: "confirme", want: MissionStatusConfirme, wantOK: true},
		{name: "accented confirme", raw: "confirmé", want: MissionStatusConfirme, wantOK: true},
		{name: "accented annule", raw: "annulé", want: MissionStatusAnnule, wantOK: true},
		{name: "accented livre", raw: "livré", want: MissionStatusLivre, wantOK: true},
		{name: "accented termine", raw: "terminé", want: MissionStatusTermine, wantOK: true},
		{name: "feminine accented", raw: "confirmée", want: MissionStatusConfirme, wantOK: true},
		{name: "uppercase", raw: "EN_ATTENTE", want: MissionStatusEnAttente, wantOK: true},
		{name: "whitespace", raw: "  livre ", want: MissionStatusLivre, wantOK: true},
		{name: "unknown", raw: "delivered", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMissionStatus(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseMissionStatus(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMissionStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeMissionStatus_UnknownDefaultsToEnAttente(t *testing.T) {
	for _, raw := range []string{"", "garbage", "DELIVERED", "fini"} {
		if got := NormalizeMissionStatus(raw); got != MissionStatusEnAttente {
			t.Errorf("NormalizeMissionStatus(%q) = %q, want en_attente", raw, got)
		}
	}
}

func TestCanClientCancel(t *testing.T) {
	for _, status := range MissionStatuses {
		want := status == MissionStatusConfirme
		if got := CanClientCancel(status); got != want {
			t.Errorf("CanClientCancel(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestMissionStatus_IsTerminal(t *testing.T) {
	terminal := map[MissionStatus]bool{
		MissionStatusTermine: true,
		MissionStatusAnnule:  true,
	}
	for _, status := range MissionStatuses {
		if got := status.IsTerminal(); got != terminal[status] {
			t.Errorf("%q.IsTerminal() = %v, want %v", status, got, terminal[status])
		}
	}
}
