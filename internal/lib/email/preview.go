package email

// PreviewData holds sample variables for every template, keyed by template
// name. It is used to render previews and to check templates in tests.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Michael",
	},
}
