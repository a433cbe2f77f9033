package handlers

import (
	"html/template"
	"net/http"
)

// DocsHandler serves the legal pages the mobile app links to from its
// settings screen.
type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

func (h *DocsHandler) ServePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	const privacyHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Privacy Policy - DoOrDoNot</title>
	</head>
	<body>
		<h1>Privacy Policy</h1>
		<p>DoOrDoNot stores your account email, display name and your habit
		check-in history so the app can show your streaks and calendar.</p>

		<h2>What we collect</h2>
		<ul>
			<li>Your email address and display name (via Firebase Authentication)</li>
			<li>The habits you create and the days you mark them done or failed</li>
		</ul>
		<p>We do not access your photos, contacts, camera, microphone, or location.</p>

		<h2>Storage</h2>
		<p>Your data lives in your own area of our cloud database and is only
		readable by your signed-in account. Deleting your account removes all
		of it.</p>

		<h2>Your rights</h2>
		<p>You can delete your account and all associated data at any time from
		the settings screen.</p>
	</body>
	</html>
	`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.New("privacy").Parse(privacyHtml)
	if err != nil {
		http.Error(w, "Could not load privacy policy", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, nil)
}

func (h *DocsHandler) ServeTermsOfService(w http.ResponseWriter, r *http.Request) {
	const termsHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Terms of Service - DoOrDoNot</title>
	</head>
	<body>
		<h1>Terms of Service</h1>
		<p>By using DoOrDoNot you agree to these terms.</p>

		<h2>Accounts</h2>
		<p>You need an account to track habits. You are responsible for keeping
		your credentials secure.</p>

		<h2>The service</h2>
		<p>DoOrDoNot is provided as-is. Errors, downtime, or data loss may
		occur; use the app at your own risk.</p>

		<h2>Changes</h2>
		<p>We may update these terms. Continued use after changes means you
		accept the new terms.</p>
	</body>
	</html>
	`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.New("terms").Parse(termsHtml)
	if err != nil {
		http.Error(w, "Could not load terms of service", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, nil)
}
