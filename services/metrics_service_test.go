package services

import "testing"

func TestCommandVerbClassification(t *testing.T) {
	cases := []struct {
		command string
		want    string
	}{
		{"docker --version", "version"},
		{"docker info --format '{{.ServerVersion}}'", "info"},
		{"docker inspect --format '{{.State.Status}}' graphstack-meta", "inspect"},
		{"docker image inspect --format '{{.Id}}' graphstack/meta:latest", "inspect"},
		{"docker stats --no-stream --format '{{.CPUPerc}}' graphstack-meta", "stats"},
		{"docker load -i /home/user/.graphstack/images/meta.tar.gz", "load"},
		{"docker compose -f /tmp/compose.yaml up -d", "up"},
		{"docker-compose -f /tmp/compose.yaml stop storage", "stop"},
		{"docker compose -f /tmp/compose.yaml logs --no-color --tail 200 meta", "logs"},
		{"docker something-new", "other"},
	}
	for _, tc := range cases {
		if got := commandVerb(tc.command); got != tc.want {
			t.Errorf("commandVerb(%q) = %q, want %q", tc.command, got, tc.want)
		}
	}
}

func TestHealthzCountersMonotonic(t *testing.T) {
	before := GetTotalRequestCount()
	IncrementRequestCount("/test")
	if GetTotalRequestCount() != before+1 {
		t.Fatal("request total must advance")
	}

	beforeErrors := GetTotalErrorCount()
	IncrementErrorCount("/test")
	if GetTotalErrorCount() != beforeErrors+1 {
		t.Fatal("error total must advance")
	}

	beforeStarts := GetStackStartCount()
	RecordStackStart()
	if GetStackStartCount() != beforeStarts+1 {
		t.Fatal("stack start total must advance")
	}
}
