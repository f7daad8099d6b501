/*
Package account owns the directory of accounts allowed to call the API.

The service handles:
- Registration with case-insensitive username uniqueness
- Listing accounts ordered by ID
- Removal by username
- Credential verification for the authentication middleware

Usage:

	svc := account.NewService(repo, utils.NewBcryptHasher(cost), metrics)

	created, err := svc.Register(ctx, &models.CreateAccountInput{
	    Name:     "John Doe",
	    Username: "JohnDoe",
	    Password: "secret",
	})

	ok := svc.Verify(ctx, "johndoe", "secret")

Error Handling:

Register, List and Remove return domain errors from internal/errors:
- InvalidAccount: a required field is blank or too long
- ErrUsernameTaken: the username exists under case-insensitive comparison
- ErrAccountNotFound: Remove found no account

Verify never returns an error. Unknown usernames and wrong passwords are
indistinguishable to the caller, and both paths run a bcrypt comparison.

Concurrency:

Register, Remove and Verify serialize per normalized username, so a removal
is ordered against registrations and verifications of the same name. The
repository makes check-then-insert atomic across processes.
*/
package account
