package redir

import "testing"

func TestParseAndStrip(t *testing.T) {
	tests := []struct {
		name       string
		args       string
		wantArgs   string
		wantStdout *Target
		wantStderr *Target
	}{
		{"none", "a b c", "a b c", nil, nil},
		{"truncate", "a > out.log", "a ", &Target{"out.log", Truncate}, nil},
		{"append", "a >> out.log", "a ", &Target{"out.log", Append}, nil},
		{"explicit fd truncate", "a 1> out.log", "a ", &Target{"out.log", Truncate}, nil},
		{"explicit fd append", "a 1>> out.log", "a ", &Target{"out.log", Append}, nil},
		{"stderr truncate", "a 2> err.log", "a ", nil, &Target{"err.log", Truncate}},
		{"stderr append", "a 2>> err.log", "a ", nil, &Target{"err.log", Append}},
		{"both", "a > out.log 2> err.log", "a ", &Target{"out.log", Truncate}, &Target{"err.log", Truncate}},
		{"stderr before stdout", "a 2> err.log > out.log", "a ", &Target{"out.log", Truncate}, &Target{"err.log", Truncate}},
		{"trailing operator no filename", "echo hi >", "echo hi >", nil, nil},
		{"quotes not honored", "echo '2>foo'", "echo '", nil, &Target{"foo'", Truncate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			spec := ParseAndStrip(&args)

			if args != tt.wantArgs {
				t.Errorf("stripped args = %q, want %q", args, tt.wantArgs)
			}
			assertTarget(t, "stdout", spec.Stdout, tt.wantStdout)
			assertTarget(t, "stderr", spec.Stderr, tt.wantStderr)
		})
	}
}

func TestParseAndStripIsIdempotent(t *testing.T) {
	args := "cat file.txt > out.log"
	ParseAndStrip(&args)
	before := args

	spec := ParseAndStrip(&args)
	if args != before {
		t.Errorf("second pass changed args: %q -> %q", before, args)
	}
	if spec.Stdout != nil || spec.Stderr != nil {
		t.Errorf("second pass found a redirection: %+v", spec)
	}
}

func assertTarget(t *testing.T, label string, got, want *Target) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s target = %v, want %v", label, got, want)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s target = %+v, want %+v", label, *got, *want)
	}
}
