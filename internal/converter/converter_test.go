package converter

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/EM63-INI-converter/internal/csvparser"
	"github.com/ginjaninja78/EM63-INI-converter/internal/types"
	"github.com/ginjaninja78/EM63-INI-converter/internal/validation"
)

const inventory = "Machine ID,IP address,Mng.\n" +
	"3,10.0.0.3,OK\n" +
	"7,10.0.0.7,Out of Mng.\n" +
	"12,10.0.0.12,OK\n"

const wantINI = "[MACHINES]\n" +
	"1=M03\n" +
	"2=M12\n" +
	"\n" +
	"[M03]\n" +
	"IPADDRESS=10.0.0.3\n" +
	"MAXSESSIONS=15\n" +
	"SESSIONPATH=C:\\FANUC\\EM63\\SESSION\\M03\n" +
	"\n" +
	"[M12]\n" +
	"IPADDRESS=10.0.0.12\n" +
	"MAXSESSIONS=15\n" +
	"SESSIONPATH=C:\\FANUC\\EM63\\SESSION\\M12\n" +
	"\n"

func defaultSettings() types.ConversionSettings {
	return types.ConversionSettings{
		MaxSessions: "15",
		DefaultPath: `C:\FANUC\EM63\SESSION\`,
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	got, err := Convert(inventory, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != wantINI {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, wantINI)
	}
}

func TestConvert_Idempotent(t *testing.T) {
	first, err := Convert(inventory, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	second, err := Convert(inventory, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if first != second {
		t.Error("Convert output differs between identical calls")
	}
}

func TestConvert_QuotedAndUnquotedMatch(t *testing.T) {
	quoted := "\"Machine ID\",\"IP address\",\"Mng.\"\n" +
		"\"3\",\"10.0.0.3\",'OK'\n" +
		"7,\"10.0.0.7\",\"Out of Mng.\"\n" +
		"12,10.0.0.12,OK\n"

	got, err := Convert(quoted, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != wantINI {
		t.Errorf("quoted input converted differently:\n%s", got)
	}
}

func TestConvert_ExcludesOutOfManagement(t *testing.T) {
	text := "Machine ID,IP address,Mng.\n1,a,Out of Mng.\n2,b,Out of Mng.\n"

	got, err := Convert(text, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != "[MACHINES]\n\n" {
		t.Errorf("Convert() = %q, want empty MACHINES section", got)
	}
}

func TestConvert_MngMatchIsExact(t *testing.T) {
	text := "Machine ID,IP address,Mng.\n1,a,out of mng.\n2,b, Out of Mng.\n"

	got, err := Convert(text, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(got, "1=M01\n2=M02\n") {
		t.Errorf("near-miss Mng. values should be kept:\n%s", got)
	}
}

func TestConvert_ColumnOrderIndependent(t *testing.T) {
	text := "Mng.;Location;IP address;Machine ID\nOK;Hall 1;192.168.1.5;5\n"

	got, err := Convert(text, ';', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := "[MACHINES]\n1=M05\n\n[M05]\nIPADDRESS=192.168.1.5\nMAXSESSIONS=15\nSESSIONPATH=C:\\FANUC\\EM63\\SESSION\\M05\n\n"
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvert_SkipsBlankLines(t *testing.T) {
	text := "Machine ID,IP address,Mng.\n\n3,10.0.0.3,OK\n   \n7,10.0.0.7,Out of Mng.\n\n12,10.0.0.12,OK\n\n\n"

	got, err := Convert(text, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != wantINI {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, wantINI)
	}
}

func TestConvert_CRLF(t *testing.T) {
	text := strings.ReplaceAll(inventory, "\n", "\r\n")

	got, err := Convert(text, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != wantINI {
		t.Errorf("Convert() =\n%q\nwant\n%q", got, wantINI)
	}
}

func TestConvert_Duplicates(t *testing.T) {
	text := "Machine ID,IP address,Mng.\n5,10.0.0.1,OK\n05,10.0.0.2,OK\n"

	got, err := Convert(text, ',', defaultSettings())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	section := "[M05]\nIPADDRESS=10.0.0.2\nMAXSESSIONS=15\nSESSIONPATH=C:\\FANUC\\EM63\\SESSION\\M05\n\n"
	want := "[MACHINES]\n1=M05\n2=M05\n\n" + section + section
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvert_SettingsCopiedVerbatim(t *testing.T) {
	settings := types.ConversionSettings{MaxSessions: "15abc", DefaultPath: "/srv/em63/"}

	got, err := Convert("Machine ID,IP address,Mng.\n1,h,OK", ',', settings)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(got, "MAXSESSIONS=15abc\n") {
		t.Errorf("MAXSESSIONS not verbatim:\n%s", got)
	}
	if !strings.Contains(got, "SESSIONPATH=/srv/em63/M01\n") {
		t.Errorf("SESSIONPATH wrong:\n%s", got)
	}
}

func TestConvert_MissingColumns(t *testing.T) {
	_, err := Convert("Machine ID,Address\n1,a", ',', defaultSettings())

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Convert error = %v, want *SchemaError", err)
	}
	want := []string{"IP address", "Mng."}
	if !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Errorf("Missing = %#v, want %#v", schemaErr.Missing, want)
	}
	if !strings.Contains(err.Error(), "IP address, Mng.") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConvert_ShortRowIsShapeError(t *testing.T) {
	// Convert does not validate, but a row too short for a required column
	// must still fail cleanly.
	_, err := Convert("Machine ID,IP address,Mng.\n1,a,OK\n2,b", ',', defaultSettings())

	var shapeErr *validation.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Convert error = %v, want *validation.ShapeError", err)
	}
	if shapeErr.Line != 3 {
		t.Errorf("Line = %d, want 3", shapeErr.Line)
	}
}

func TestConvert_Empty(t *testing.T) {
	_, err := Convert("  \n ", ',', defaultSettings())
	if !errors.Is(err, csvparser.ErrEmptyInput) {
		t.Errorf("Convert error = %v, want ErrEmptyInput", err)
	}
}

func TestRun(t *testing.T) {
	conv := New(',', defaultSettings())

	result := conv.Run("inventory.csv", inventory)
	if !result.Success {
		t.Fatalf("Run failed: %v", result.Error)
	}
	if result.Output != wantINI {
		t.Errorf("Output =\n%s", result.Output)
	}
	if result.Stats.Rows != 3 || result.Stats.Machines != 2 || result.Stats.Excluded != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.Source != "inventory.csv" {
		t.Errorf("Source = %q", result.Source)
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		settings types.ConversionSettings
		input    string
		check    func(error) bool
	}{
		{
			name:     "bad max sessions",
			settings: types.ConversionSettings{MaxSessions: "abc", DefaultPath: `C:\`},
			input:    inventory,
			check: func(err error) bool {
				var e *validation.SettingsError
				return errors.As(err, &e)
			},
		},
		{
			name:     "settings checked before shape",
			settings: types.ConversionSettings{MaxSessions: "", DefaultPath: `C:\`},
			input:    "a,b\n1",
			check: func(err error) bool {
				var e *validation.SettingsError
				return errors.As(err, &e)
			},
		},
		{
			name:     "mismatched row",
			settings: defaultSettings(),
			input:    "Machine ID,IP address,Mng.\n3,10.0.0.3",
			check: func(err error) bool {
				var e *validation.ShapeError
				return errors.As(err, &e)
			},
		},
		{
			name:     "missing column",
			settings: defaultSettings(),
			input:    "Machine,IP address,Mng.\n3,10.0.0.3,OK",
			check: func(err error) bool {
				var e *SchemaError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(',', tt.settings).Run("test", tt.input)
			if result.Success {
				t.Fatal("Run should fail")
			}
			if result.Output != "" {
				t.Errorf("Output should be empty on failure, got %q", result.Output)
			}
			if !tt.check(result.Error) {
				t.Errorf("unexpected error type: %v", result.Error)
			}
		})
	}
}

func TestRun_ReportsDuplicates(t *testing.T) {
	text := "Machine ID,IP address,Mng.\n5,a,OK\n6,b,OK\n05,c,OK\n"

	result := New(',', defaultSettings()).Run("dups.csv", text)
	if !result.Success {
		t.Fatalf("Run failed: %v", result.Error)
	}
	if !reflect.DeepEqual(result.Stats.Duplicates, []string{"M05"}) {
		t.Errorf("Duplicates = %#v, want [M05]", result.Stats.Duplicates)
	}
	if result.Stats.Machines != 3 {
		t.Errorf("Machines = %d, want 3", result.Stats.Machines)
	}
}

func TestMachineName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3", "M03"},
		{"12", "M12"},
		{"123", "M123"},
		{"", "M00"},
		{"A", "M0A"},
		{"AB7", "MAB7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MachineName(tt.in); got != tt.want {
				t.Errorf("MachineName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPadLeft(t *testing.T) {
	if got := PadLeft("7", 4, '0'); got != "0007" {
		t.Errorf("PadLeft = %q, want 0007", got)
	}
	if got := PadLeft("é", 2, '0'); got != "0é" {
		t.Errorf("PadLeft counts runes: got %q", got)
	}
	if got := PadLeft("12345", 2, '0'); got != "12345" {
		t.Errorf("PadLeft truncated: %q", got)
	}
}
