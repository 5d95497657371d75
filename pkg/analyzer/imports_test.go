package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectImports(t *testing.T) {
	source := `
import React from 'react';
import { useState, useEffect as effect } from 'react';
import * as utils from './utils';
import './styles.css';
const x = 1;
`
	root, src := parseSource(t, source, "app.ts")

	imports := CollectImports(root, src)
	require.Len(t, imports, 4)

	assert.Equal(t, ImportRecord{Source: "react", Specifiers: []string{"React"}, IsDefault: true}, imports[0])
	assert.Equal(t, ImportRecord{Source: "react", Specifiers: []string{"useState", "effect"}}, imports[1])
	assert.Equal(t, ImportRecord{Source: "./utils", Specifiers: []string{"utils"}}, imports[2])
	assert.Equal(t, ImportRecord{Source: "./styles.css"}, imports[3])
}

func TestCollectImportsMixedClause(t *testing.T) {
	root, src := parseSource(t, "import React, { Component } from 'react';", "app.ts")

	imports := CollectImports(root, src)
	require.Len(t, imports, 1)
	assert.True(t, imports[0].IsDefault)
	assert.Equal(t, []string{"React", "Component"}, imports[0].Specifiers)
}

func TestInferFramework(t *testing.T) {
	testCases := []struct {
		name    string
		imports []ImportRecord
		want    Framework
	}{
		{
			name:    "react",
			imports: []ImportRecord{{Source: "react"}},
			want:    FrameworkReact,
		},
		{
			name:    "react dom",
			imports: []ImportRecord{{Source: "react-dom/client"}},
			want:    FrameworkReact,
		},
		{
			name:    "react native",
			imports: []ImportRecord{{Source: "react-native"}},
			want:    FrameworkReactNative,
		},
		{
			name:    "react native library",
			imports: []ImportRecord{{Source: "react-native-gesture-handler"}},
			want:    FrameworkReactNative,
		},
		{
			name:    "first matching import decides",
			imports: []ImportRecord{{Source: "./helpers"}, {Source: "react"}, {Source: "react-native"}},
			want:    FrameworkReact,
		},
		{
			name:    "vanilla",
			imports: []ImportRecord{{Source: "lodash"}, {Source: "./util"}},
			want:    FrameworkVanilla,
		},
		{
			name: "no imports",
			want: FrameworkVanilla,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferFramework(tc.imports))
		})
	}
}
