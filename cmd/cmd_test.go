package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const (
	caseInput  = `[{"operation":"buy", "unit-cost":10.00, "quantity": 10000},{"operation":"sell", "unit-cost":5.00, "quantity": 5000},{"operation":"sell", "unit-cost":20.00, "quantity": 3000}]`
	caseOutput = `[{"tax":0},{"tax":0},{"tax":1000}]`
)

// execute parses args for cmd and executes it.
func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("cannot parse %v: %v", args, err)
	}
	return cmd.Execute(context.Background(), f)
}

// swapStdio replaces stdin and stdout for the duration of the test.
func swapStdio(t *testing.T, in string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	oldIn, oldOut := stdin, stdout
	stdin, stdout = strings.NewReader(in), &out
	t.Cleanup(func() { stdin, stdout = oldIn, oldOut })
	return &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess_Files(t *testing.T) {
	input := writeFile(t, "batches.jsonl", caseInput+"\n\n"+caseInput+"\n")
	output := filepath.Join(t.TempDir(), "taxes.jsonl")

	if got := execute(t, &processCmd{}, "-i", input, "-o", output, "-workers", "2"); got != subcommands.ExitSuccess {
		t.Fatalf("process exit status = %v, want %v", got, subcommands.ExitSuccess)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if want := caseOutput + "\n" + caseOutput + "\n"; string(got) != want {
		t.Errorf("process wrote %q, want %q", got, want)
	}
}

func TestProcess_Stdio(t *testing.T) {
	out := swapStdio(t, `{"batch":`+caseInput+"}\n")

	if got := execute(t, &processCmd{}, "-select", "$.batch"); got != subcommands.ExitSuccess {
		t.Fatalf("process exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if got, want := out.String(), caseOutput+"\n"; got != want {
		t.Errorf("process wrote %q, want %q", got, want)
	}
}

func TestProcess_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		args  []string
		want  subcommands.ExitStatus
	}{
		{
			name: "no workers",
			args: []string{"-workers", "0"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "invalid selector",
			args: []string{"-select", "$["},
			want: subcommands.ExitUsageError,
		},
		{
			name: "missing input file",
			args: []string{"-i", filepath.Join(t.TempDir(), "missing.jsonl")},
			want: subcommands.ExitFailure,
		},
		{
			name:  "invalid operation",
			input: `[{"operation":"hold", "unit-cost":10.00, "quantity": 1}]` + "\n",
			want:  subcommands.ExitFailure,
		},
		{
			name:  "oversell in strict mode",
			input: `[{"operation":"sell", "unit-cost":10.00, "quantity": 1}]` + "\n",
			args:  []string{"-strict"},
			want:  subcommands.ExitFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			swapStdio(t, tc.input)
			if got := execute(t, &processCmd{}, tc.args...); got != tc.want {
				t.Errorf("process exit status = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProcess_EnvDefaults(t *testing.T) {
	t.Setenv(EnvSelect, "$.batch")
	t.Setenv(EnvWorkers, "3")

	c := &processCmd{}
	c.SetFlags(flag.NewFlagSet(c.Name(), flag.ContinueOnError))
	if got, want := c.selector, "$.batch"; got != want {
		t.Errorf("selector = %q, want %q", got, want)
	}
	if got, want := c.workers, 3; got != want {
		t.Errorf("workers = %d, want %d", got, want)
	}
}

func TestReport_Plain(t *testing.T) {
	out := swapStdio(t, caseInput+"\n")

	if got := execute(t, &reportCmd{}, "-style", "plain", "-c", "USD"); got != subcommands.ExitSuccess {
		t.Fatalf("report exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	md := out.String()
	for _, want := range []string{"# Capital Gains Tax", "$1,000.00", "## Final Position"} {
		if !strings.Contains(md, want) {
			t.Errorf("report does not contain %q:\n%s", want, md)
		}
	}
}

func TestReport_Summary(t *testing.T) {
	out := swapStdio(t, caseInput+"\n"+caseInput+"\n")

	if got := execute(t, &reportCmd{}, "-style", "plain", "-c", "", "-summary"); got != subcommands.ExitSuccess {
		t.Fatalf("report exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if md := out.String(); !strings.Contains(md, "2000.00") {
		t.Errorf("summary does not contain the total tax:\n%s", md)
	}
}

func TestVersion(t *testing.T) {
	out := swapStdio(t, "")
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	if got := execute(t, &versionCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("version exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if got, want := out.String(), "v1.2.3\n"; got != want {
		t.Errorf("version wrote %q, want %q", got, want)
	}
}

func TestTopic(t *testing.T) {
	out := swapStdio(t, "")

	if got := execute(t, &topicCmd{}, "-style", "plain", "rules"); got != subcommands.ExitSuccess {
		t.Fatalf("topic exit status = %v, want %v", got, subcommands.ExitSuccess)
	}
	if md := out.String(); !strings.HasPrefix(md, "# Tax rules") {
		t.Errorf("topic wrote:\n%s", md)
	}
	if got := execute(t, &topicCmd{}, "unknown"); got != subcommands.ExitFailure {
		t.Errorf("topic unknown exit status = %v, want %v", got, subcommands.ExitFailure)
	}
}

func TestCompletion_Usage(t *testing.T) {
	if got := execute(t, &completionCmd{}, "-install", "-uninstall"); got != subcommands.ExitUsageError {
		t.Errorf("completion exit status = %v, want %v", got, subcommands.ExitUsageError)
	}
}

func TestCompletion_Tree(t *testing.T) {
	c := Completion()
	for _, name := range []string{"process", "report", "version", "completion"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("completion has no %q subcommand", name)
		}
	}
	if _, ok := c.Sub["report"].Flags["select"]; !ok {
		t.Error("report completion has no -select flag")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CGT_TEST_INT", "12")
	t.Setenv("CGT_TEST_BAD_INT", "twelve")
	t.Setenv("CGT_TEST_BOOL", "true")

	if got := envInt("CGT_TEST_INT", 1); got != 12 {
		t.Errorf("envInt() = %d, want 12", got)
	}
	if got := envInt("CGT_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("envInt() with an invalid value = %d, want the default 1", got)
	}
	if got := envInt("CGT_TEST_UNSET", 7); got != 7 {
		t.Errorf("envInt() unset = %d, want the default 7", got)
	}
	if got := envBool("CGT_TEST_BOOL", false); !got {
		t.Error("envBool() = false, want true")
	}
	if got := envString("CGT_TEST_UNSET", "BRL"); got != "BRL" {
		t.Errorf("envString() unset = %q, want the default", got)
	}
}

func TestLoadEnv(t *testing.T) {
	file := writeFile(t, "cgt.env", "CGT_CURRENCY=EUR\n")
	t.Setenv(EnvFile, file)
	// registered for cleanup, then unset so that the file provides it.
	t.Setenv(EnvCurrency, "")
	os.Unsetenv(EnvCurrency)

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got, want := os.Getenv(EnvCurrency), "EUR"; got != want {
		t.Errorf("$%s = %q, want %q", EnvCurrency, got, want)
	}

	t.Setenv(EnvFile, filepath.Join(t.TempDir(), "missing.env"))
	if err := LoadEnv(); err == nil {
		t.Error("LoadEnv() with a missing explicit file should fail")
	}
}
