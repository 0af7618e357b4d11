// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package version

import (
	"runtime/debug"
	"testing"
)

func TestWithCommit(t *testing.T) {
	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", WithMeta},
		{"abc", "20240101", WithMeta + "-20240101"},
		{"0123456789abcdef", "", WithMeta + "-01234567"},
		{"0123456789abcdef", "20240101", WithMeta + "-01234567-20240101"},
	}
	for i, tt := range tests {
		if have := WithCommit(tt.commit, tt.date); have != tt.want {
			t.Errorf("test %d: version mismatch: have %s, want %s", i, have, tt.want)
		}
	}
}

func TestBuildInfoVCS(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2024-03-05T10:11:12Z"},
		{Key: "vcs.modified", Value: "true"},
	}}
	vcs, ok := buildInfoVCS(info)
	if !ok {
		t.Fatal("vcs info not recognized")
	}
	want := VCSInfo{Commit: "0123456789abcdef", Date: "20240305", Dirty: true}
	if vcs != want {
		t.Errorf("vcs mismatch: have %+v, want %+v", vcs, want)
	}
	if _, ok := buildInfoVCS(&debug.BuildInfo{}); ok {
		t.Error("empty build info reported as vcs")
	}
}

func TestVersionInfo(t *testing.T) {
	own := &debug.BuildInfo{Path: ourPath + "/cmd/abicheck", Main: debug.Module{Path: ourPath, Version: "v0.4.0"}}
	if have, want := versionInfo(own), "abicheck v0.4.0"; have != want {
		t.Errorf("own binary: have %q, want %q", have, want)
	}
	dep := &debug.BuildInfo{
		Path: "example.com/tool",
		Main: debug.Module{Path: "example.com/tool", Version: "v1.0.0"},
		Deps: []*debug.Module{{Path: ourPath, Version: "v0.3.1", Replace: &debug.Module{Path: "../abicheck", Version: "(devel)"}}},
	}
	if have, want := versionInfo(dep), "example.com/tool@v1.0.0 "+ourPath+"@v0.3.1 (replaced by ../abicheck@(devel))"; have != want {
		t.Errorf("dependency: have %q, want %q", have, want)
	}
	foreign := &debug.BuildInfo{Path: "example.com/tool"}
	if have, want := versionInfo(foreign), "abicheck "+WithMeta; have != want {
		t.Errorf("unrelated: have %q, want %q", have, want)
	}
}
