package generator

import "text/template"

// scaffoldTemplate renders one test file from precomputed template data.
// All naming and value synthesis happens in Go; the template is layout only.
var scaffoldTemplate = template.Must(template.New("scaffold").Parse(`{{- if .TestingImport -}}
import { render, screen, fireEvent } from '{{ .TestingImport }}';
{{ end -}}
{{- if .ImportLine -}}
{{ .ImportLine }}
{{ end }}
{{- range .Components }}
describe('<{{ .Name }} />', () => {
  it('renders', () => {
    render(<{{ .RenderTag }} />);
  });
{{- if .AcceptsChildren }}

  it('renders children', () => {
    render(<{{ .RenderTag }}>content</{{ .Name }}>);
  });
{{- end }}
{{- range .Events }}

  it('handles {{ .Name }}', () => {
    const {{ .Name }} = jest.fn();
    render(<{{ .RenderTag }} />);
    // TODO: fire the interaction that triggers {{ .Name }}
    expect({{ .Name }}).not.toHaveBeenCalled();
  });
{{- end }}
{{- if .HookList }}

  // Uses hooks: {{ .HookList }}
{{- end }}
});
{{ end }}
{{- range .Functions }}
describe('{{ .Name }}', () => {
  it('returns a value', {{ if .IsAsync }}async {{ end }}() => {
    // TODO: replace sample arguments{{ if .ParamHint }} ({{ .ParamHint }}){{ end }}
    expect({{ if .IsAsync }}await {{ end }}{{ .Name }}({{ .Args }})).toBeDefined();
  });
});
{{ end }}`))
