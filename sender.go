/*
Package sender provides a configuration-driven bulk email tool that sends
personalized mail through the Gmail API using OAuth2.

Campaigns are defined in a single configuration file: each campaign names a
subject, a plain-text template, and a list of recipients. Templates use the
literal marker {} as a positional placeholder; each recipient carries an
ordered list of fill items that replace the markers left to right, plus an
optional title that becomes a "Dear <title>," greeting line.

# Configuration

The campaign file is YAML or JSON. The bare form maps campaign names directly
to campaign definitions:

	welcome:
	  subject: "Welcome aboard"
	  template: welcome.txt
	  recipients:
	    - email: alice@example.com
	      title: "Ms. Liddell"
	      fill_items: ["Alice", "42"]

The full form nests the same mapping under a campaigns key and adds run-wide
settings (sender, templates_dir, send_log).

# Usage

Basic usage:

	email-sender send              # send every campaign
	email-sender send welcome     # send one campaign
	email-sender send --dry-run   # compose without dispatching
	email-sender auth             # run the OAuth flow and cache the token
	email-sender check            # validate the campaign file

For more information, see the documentation at
https://github.com/wmontagu/email-sender
*/
package sender

// Version is the current version of the tool
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
