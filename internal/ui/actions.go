package ui

import (
	"context"

	"github.com/DaanHessen/survey-demo-tui/internal/sdk"
)

// action is one button: a fixed call with literal arguments.
type action struct {
	label    string
	help     string // markdown
	dispatch func(ctx context.Context, c sdk.Client) error
}

const (
	trackedAction = "Code Action"
	planAttribute = "Plan"
	demoEmail     = "test@web.com"
	demoUserID    = "THIS-IS-A-VERY-LONG-USER-ID-FOR-TESTING"
)

var actions = []action{
	{
		label: "Logout",
		help: "On logout a few things happen: **a new person is created** and **surveys & no-code actions are pulled** from Formbricks.\n\n" +
			"If you made a change in the Formbricks app and it does not seem to work, hit 'Logout' and try again.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.Logout(ctx) },
	},
	{
		label:    "Code Action",
		help:     "This button sends a [Code Action](https://formbricks.com/docs/actions/code) to the Formbricks API called 'Code Action'. You will find it in the Actions Tab.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.Track(ctx, trackedAction) },
	},
	{
		label:    "Set Plan to 'Free'",
		help:     "This button sets the [attribute](https://formbricks.com/docs/attributes/custom-attributes) 'Plan' to 'Free'. If the attribute does not exist, it creates it.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.SetAttribute(ctx, planAttribute, "Free") },
	},
	{
		label:    "Set Plan to 'Paid'",
		help:     "This button sets the [attribute](https://formbricks.com/docs/attributes/custom-attributes) 'Plan' to 'Paid'. If the attribute does not exist, it creates it.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.SetAttribute(ctx, planAttribute, "Paid") },
	},
	{
		label:    "Set Email",
		help:     "This button sets the [user email](https://formbricks.com/docs/attributes/identify-users) 'test@web.com'.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.SetEmail(ctx, demoEmail) },
	},
	{
		label:    "Set User ID",
		help:     "This button sets an external [user ID](https://formbricks.com/docs/attributes/identify-users) to 'THIS-IS-A-VERY-LONG-USER-ID-FOR-TESTING'.",
		dispatch: func(ctx context.Context, c sdk.Client) error { return c.SetUserID(ctx, demoUserID) },
	},
}
