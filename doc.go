// Package stripekit is a typed client for the Stripe HTTP API.
//
// The package itself contains only the runtime: the request engine with
// authentication, idempotency and retries, the pagination engine, the wire
// primitives shared by every resource, and the error taxonomy. The typed
// resource surface lives in generated packages (see the resources package
// and cmd/stripegen); webhook verification lives in the webhook package.
//
// A minimal call looks like
//
//	c := stripekit.New(os.Getenv("STRIPE_SECRET_KEY"))
//
//	op := resources.NewCreateCustomer().Email("jane@example.com")
//	cus, err := op.Send(ctx, c)
//
// Every operation value also has a blocking variant (SendBlocking) that
// drives its own context, and a Customize method to override the client's
// default request strategy per call:
//
//	op.Customize(stripekit.ExponentialBackoff(3))
//
// List endpoints return a Paginator. Iterate pages explicitly with
// NextPage, or stream elements:
//
//	for cus, err := range resources.NewListCustomers().Paginate(c).All(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(cus.ID)
//	}
//
// All failures surface as *stripekit.Error. The Kind field tells transport
// problems, provider error bodies, decode mismatches and caller misuse
// apart; see ErrorKind. The client never logs or embeds the secret key in
// error values.
package stripekit
