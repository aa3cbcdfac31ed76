package service

import "fmt"

func welcomeEmailTemplate(siteName, siteURL string) (string, string) {
	subject := fmt.Sprintf("Thanks for subscribing to %s", siteName)
	body := fmt.Sprintf(`Hi,

You are now on the %s email list. New posts will land in your inbox as soon
as they are published.

Catch up on everything written so far:
%s/blog/

If you did not sign up, you can ignore this email.

Best,
%s`, siteName, siteURL, siteName)

	return subject, body
}
