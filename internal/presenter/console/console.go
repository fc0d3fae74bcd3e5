// Package console renders operator alerts on the terminal the sidecar runs
// on. It is the default Presenter; a register UI integration would replace it
// without the engine noticing.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"agegate/internal/catalog"
	"agegate/internal/credential"
)

// Presenter writes operator-facing alerts to a terminal.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer
}

// Option configures the Presenter.
type Option func(*Presenter)

// WithWriter redirects output, for tests.
func WithWriter(w io.Writer) Option {
	return func(p *Presenter) {
		p.out = w
	}
}

// New creates a console presenter writing to stdout.
func New(opts ...Option) *Presenter {
	p := &Presenter{out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PromptForCredential asks the operator to check the customer's ID.
func (p *Presenter) PromptForCredential(_ context.Context, trigger catalog.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := trigger.Name
	if name == "" {
		name = trigger.Code
	}
	fmt.Fprintf(p.out, "\n*** ID CHECK REQUIRED ***\n")
	fmt.Fprintf(p.out, "Restricted item: %s (%s)\n", name, trigger.Group)
	fmt.Fprintf(p.out, "Scan the customer's ID, or type their birth date (YYYYMMDD).\n\n")
}

// VerificationApproved announces a passed age check.
func (p *Presenter) VerificationApproved(_ context.Context, age int, cred *credential.Credential) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name := cred.DisplayName(); name != "" {
		fmt.Fprintf(p.out, "AGE VERIFIED: %s, age %d. Proceed with sale.\n", name, age)
		return
	}
	fmt.Fprintf(p.out, "AGE VERIFIED: age %d. Proceed with sale.\n", age)
}

// VerificationDenied announces a failed age check. The leading BEL rings the
// terminal so the denial is heard, not just seen.
func (p *Presenter) VerificationDenied(_ context.Context, age, minimumAge int, cred *credential.Credential) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\a\n!!! SALE NOT ALLOWED !!!\n")
	if name := cred.DisplayName(); name != "" {
		fmt.Fprintf(p.out, "Customer: %s\n", name)
	}
	fmt.Fprintf(p.out, "Age %d is below the required minimum of %d.\n", age, minimumAge)
	fmt.Fprintf(p.out, "A valid ID may still be presented, or use an operator override.\n\n")
}

// CredentialError reports an unreadable ID.
func (p *Presenter) CredentialError(_ context.Context, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\nCOULD NOT READ ID: %s\n", reason)
	fmt.Fprintf(p.out, "Rescan the barcode, or type the birth date (YYYYMMDD).\n\n")
}
