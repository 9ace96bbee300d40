// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{in: "pubmed", want: PubMed},
		{in: "medline", want: PubMed},
		{in: "  PubMed ", want: PubMed},
		{in: "wos", want: WOS},
		{in: "Web of Science", want: WOS},
		{in: "webofscience", want: WOS},
		{in: "ebsco", want: EBSCO},
		{in: "EBSCOHost", want: EBSCO},
		{in: "generic", want: Generic},
		{in: "scopus", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionsOrderedOldestFirst(t *testing.T) {
	assert.Equal(t, []string{"0.9", "1.0"}, Versions(WOS))
	assert.Equal(t, []string{"1.0"}, Versions(PubMed))
	assert.Empty(t, Versions(Platform("scopus")))
}

func TestLatest(t *testing.T) {
	v, err := Latest(WOS)
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)

	_, err = Latest(Platform("scopus"))
	assert.Error(t, err)
}

func TestVersionLess(t *testing.T) {
	assert.True(t, versionLess("0.9", "1.0"))
	assert.True(t, versionLess("1.0", "1.1"))
	assert.True(t, versionLess("2", "10"))
	assert.False(t, versionLess("1.0", "1.0"))
	assert.False(t, versionLess("1.1", "1.0"))
}

func TestLookupResolvesEmptyAndLatestAlias(t *testing.T) {
	for _, version := range []string{"", "latest", "1.0"} {
		p, err := ParserFor(WOS, version)
		require.NoError(t, err, "version %q", version)
		assert.NotNil(t, p)
	}
}

func TestLookupEveryRegisteredComponent(t *testing.T) {
	for _, p := range []Platform{PubMed, WOS, EBSCO} {
		_, err := ParserFor(p, "")
		assert.NoError(t, err, "parser for %s", p)
		_, err = TranslatorFor(p, "")
		assert.NoError(t, err, "translator for %s", p)
		_, err = SerializerFor(p, "")
		assert.NoError(t, err, "serializer for %s", p)
	}
}

func TestLookupMissingRegistrations(t *testing.T) {
	_, err := ParserFor(Generic, "")
	assert.ErrorContains(t, err, "no parser")

	_, err = TranslatorFor(Generic, "")
	assert.ErrorContains(t, err, "no translator")

	_, err = SerializerFor(Generic, "")
	assert.NoError(t, err)

	_, err = ParserFor(PubMed, "0.1")
	assert.ErrorContains(t, err, "no registration")
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "wos/0.9", Key{Platform: WOS, Version: "0.9"}.String())
}
