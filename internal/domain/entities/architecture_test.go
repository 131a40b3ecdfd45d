package entities

import "testing"

func TestParseArchitecture(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "x64", expected: "x64"},
		{input: "amd64", expected: "x64"},
		{input: "64", expected: "x64"},
		{input: "X64", expected: "x64"},
		{input: "x86", expected: "x86"},
		{input: "386", expected: "x86"},
		{input: " 32 ", expected: "x86"},
		{input: "arm64", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			arch, err := ParseArchitecture(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseArchitecture(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArchitecture(%q) failed: %v", tt.input, err)
			}
			if arch.Name != tt.expected {
				t.Errorf("ParseArchitecture(%q) = %q, want %q", tt.input, arch.Name, tt.expected)
			}
		})
	}
}

func TestMatchesAsset(t *testing.T) {
	tests := []struct {
		name     string
		arch     Architecture
		filename string
		expected bool
	}{
		{name: "x64 suffix", arch: ArchX64, filename: "rufus-4.4_x64.exe", expected: true},
		{name: "amd64 keyword", arch: ArchX64, filename: "tool-windows-amd64.zip", expected: true},
		{name: "case insensitive", arch: ArchX64, filename: "Setup-X64.msi", expected: true},
		{name: "arm64 is not x64", arch: ArchX64, filename: "rufus-4.4_arm64.exe", expected: false},
		{name: "x86 keyword", arch: ArchX86, filename: "rufus-4.4_x86.exe", expected: true},
		{name: "win32 keyword", arch: ArchX86, filename: "vlc-3.0.20-win32.exe", expected: true},
		{name: "no keyword", arch: ArchX64, filename: "source.tar.gz", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arch.MatchesAsset(tt.filename); got != tt.expected {
				t.Errorf("MatchesAsset(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestDetectArchitecture(t *testing.T) {
	arch := DetectArchitecture()
	if arch.Name != "x64" && arch.Name != "x86" {
		t.Errorf("DetectArchitecture().Name = %q", arch.Name)
	}
	if len(arch.Keywords) == 0 {
		t.Error("detected architecture has no keywords")
	}
}
