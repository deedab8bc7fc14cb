package command

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"onenight/internal/engine"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "onenight version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestRolesCommand(t *testing.T) {
	output, err := executeCommand(NewRootCmd("test"), "roles")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"Doppelganger", "Mason", "2", "Tanner", "Werewolf"} {
		if !strings.Contains(output, want) {
			t.Errorf("roles output missing %q:\n%s", want, output)
		}
	}
}

func TestSimulateJSON(t *testing.T) {
	output, err := executeCommand(NewRootCmd("test"), "simulate", "--players", "4", "--seed", "3", "--json", "--lone-wolf")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var res struct {
		Votes      map[string]string `json:"votes"`
		Dead       []string          `json:"dead"`
		FinalRoles map[string]string `json:"final_roles"`
	}
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("bad JSON %q: %v", output, err)
	}
	if len(res.Votes) != 4 || len(res.FinalRoles) != 4 || len(res.Dead) == 0 {
		t.Errorf("result: %+v", res)
	}
}

func TestSimulateText(t *testing.T) {
	output, err := executeCommand(NewRootCmd("test"), "simulate", "--roles", "Werewolf=1,Seer=1,Villager=1,Hunter=1,Robber=1,Tanner=1", "--players", "3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "bot3") || !strings.Contains(output, "winners:") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestSimulateRejects(t *testing.T) {
	tests := [][]string{
		{"simulate", "--roles", "Mason=1,Villager=1,Werewolf=1,Seer=1,Robber=1,Tanner=1", "--players", "3"},
		{"simulate", "--roles", "Werewolf=2,Villager=1,Seer=1,Robber=1,Tanner=1", "--players", "3"},
		{"simulate", "--roles", "Werewolf=1,Villager=1", "--players", "3"},
		{"simulate", "--players", "11"},
	}
	for _, args := range tests {
		if _, err := executeCommand(NewRootCmd("test"), args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestDefaultMix(t *testing.T) {
	tests := []struct {
		players int
		masons  int
	}{
		{1, 0},
		{5, 0},
		{8, 0},
		{9, 2},
		{10, 2},
	}
	for _, tt := range tests {
		mix, err := defaultMix(tt.players)
		if err != nil {
			t.Fatalf("%d players: %v", tt.players, err)
		}
		total := 0
		for _, n := range mix {
			total += n
		}
		if total != tt.players+3 || mix["Mason"] != tt.masons || mix["Werewolf"] != 1 {
			t.Errorf("%d players: %v", tt.players, mix)
		}
		if _, err := engine.NewRegistry().Build(mix); err != nil {
			t.Errorf("%d players: %v", tt.players, err)
		}
	}
	if _, err := defaultMix(11); err == nil {
		t.Error("expected no default mix for 11 players")
	}
}

func TestServeRejectsAnswerTimeout(t *testing.T) {
	for _, d := range []string{"0", "-5s"} {
		_, err := executeCommand(NewRootCmd("test"), "serve", "--answer-timeout="+d, "--port", "0")
		if err == nil || !strings.Contains(err.Error(), "answer timeout") {
			t.Errorf("--answer-timeout %s: got %v", d, err)
		}
	}
}
