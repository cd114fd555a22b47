// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import "html/template"

// profileTemplate is the minimal nickname/timezone form shown after a
// first launch. Producers embed the tool in an iframe, so the markup stays
// bare.
var profileTemplate = template.Must(template.New("profile").Parse(`<!DOCTYPE html>
<html>
<head><title>Complete your profile</title></head>
<body>
<h1>Complete your profile</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/lti/profile">
  <label for="nickname">Nickname</label>
  <input type="text" id="nickname" name="nickname" value="{{.Nickname}}" required>
  <label for="time_zone">Time zone</label>
  <input type="text" id="time_zone" name="time_zone" value="{{.TimeZone}}" placeholder="Australia/Adelaide">
  {{if .CustomNext}}<input type="hidden" name="custom_next" value="{{.CustomNext}}">{{end}}
  <button type="submit">Save</button>
</form>
</body>
</html>
`))

type profileFormData struct {
	Nickname   string
	TimeZone   string
	CustomNext string
	Error      string
}
