/*
Package poll repeatedly invokes an asynchronous source until a predicate says the
observed operation is no longer active.

A poll invocation calls its Source immediately and then once per interval. Attempts never
overlap: the next timer starts only after the previous attempt resolved. Polling stops
when:

  - the Predicate reports the latest result as inactive (success),
  - the attempt budget is exhausted (an *ExceededError wrapping ErrAttemptsExceeded),
  - the Source fails (its error is returned unchanged), or
  - the context is cancelled (ctx.Err()).

Every invocation owns its attempt counter and timer, so concurrent polls never interfere.

	report, err := poll.Wait(ctx, fetchStatus, poll.WhileRunning,
		poll.WithInterval(2*time.Second),
		poll.WithMaxAttempts(30),
		poll.WithErrorMessage("cluster join timed out"),
	)
*/
package poll
