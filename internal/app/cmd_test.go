package app

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{
			name: "引数なしはserve",
			args: []string{},
			want: CommandServe,
		},
		{
			name: "serveを指定",
			args: []string{"serve"},
			want: CommandServe,
		},
		{
			name: "healthcheckを指定",
			args: []string{"healthcheck"},
			want: CommandHealthcheck,
		},
		{
			name: "サポート外のコマンドはserveにフォールバック",
			args: []string{"migrate"},
			want: CommandServe,
		},
		{
			name: "余分な引数は無視される",
			args: []string{"healthcheck", "--verbose"},
			want: CommandHealthcheck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCommand(tt.args); got != tt.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
