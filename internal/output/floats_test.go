package output

import "testing"

func TestRoundFloat(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.123456789, 0.123457},
		{1.0, 1.0},
		{0.0000001, 0.0},
		{2.5000004, 2.5},
	}
	for _, c := range cases {
		if got := RoundFloat(c.in); got != c.want {
			t.Errorf("RoundFloat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0, "1"},
		{0.5, "0.5"},
		{0.123456789, "0.123457"},
		{0.0, "0"},
	}
	for _, c := range cases {
		if got := FormatFloat(c.in); got != c.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarshalJSONDeterministic(t *testing.T) {
	v := map[string]interface{}{"b": 2, "a": 1, "c": []int{3}}

	first, err := MarshalJSON(v)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := MarshalJSON(v)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if string(got) != string(first) {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestMarshalYAML(t *testing.T) {
	data, err := MarshalYAML(map[string]int{"nodes": 4})
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}
	if string(data) != "nodes: 4\n" {
		t.Errorf("yaml = %q", data)
	}
}
