package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_RendersHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableWithWriter(&buf, []string{"ID", "Status"})
	table.AddRow([]string{"a1", "pending"})
	table.AddRows([][]string{{"a2", "confirmed"}})
	table.Render()

	got := buf.String()
	for _, want := range []string{"ID", "STATUS", "a1", "pending", "a2", "confirmed"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestTable_QuietSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableWithWriter(&buf, []string{"ID"})
	table.quiet = true
	table.AddRow([]string{"a1"})
	table.Render()

	if buf.Len() != 0 {
		t.Errorf("quiet table produced output: %q", buf.String())
	}
}
