package source

import "testing"

func TestParseColumns(t *testing.T) {
	tests := []struct {
		input   string
		want    Columns
		wantErr bool
	}{
		{"", DefaultColumns, false},
		{"x,char,y", DefaultColumns, false},
		{" X , Character , Y ", DefaultColumns, false},
		{"y,x,c", Columns{X: 1, Char: 2, Y: 0}, false},
		{"_,x,,char,y", Columns{X: 1, Char: 3, Y: 4}, false},

		{"x,y", Columns{}, true},
		{"x,x,char,y", Columns{}, true},
		{"x,char,z", Columns{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColumns(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColumns(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColumns(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColumnsString(t *testing.T) {
	tests := []struct {
		cols Columns
		want string
	}{
		{DefaultColumns, "x,char,y"},
		{Columns{X: 1, Char: 3, Y: 4}, "_,x,_,char,y"},
	}
	for _, tt := range tests {
		if got := tt.cols.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := ParseColumns(tt.cols.String())
		if err != nil || back != tt.cols {
			t.Errorf("ParseColumns(String()) = %+v, %v", back, err)
		}
	}
}

func TestColumnsValidate(t *testing.T) {
	if err := DefaultColumns.Validate(); err != nil {
		t.Errorf("DefaultColumns.Validate() = %v", err)
	}
	if err := (Columns{X: 0, Char: 0, Y: 1}).Validate(); err == nil {
		t.Error("duplicate columns should not validate")
	}
	if err := (Columns{X: -1, Char: 1, Y: 2}).Validate(); err == nil {
		t.Error("negative column should not validate")
	}
}
