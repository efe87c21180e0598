package payment_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/gateway"
	"github.com/frahmantamala/payment-processor/internal/payment"
)

// snapshotEnv unsets the given variables and restores their previous
// values once the current test ends.
func snapshotEnv(keys ...string) {
	for _, key := range keys {
		previous, present := os.LookupEnv(key)
		Expect(os.Unsetenv(key)).To(Succeed())

		DeferCleanup(func(key, previous string, present bool) {
			if present {
				Expect(os.Setenv(key, previous)).To(Succeed())
			} else {
				Expect(os.Unsetenv(key)).To(Succeed())
			}
		}, key, previous, present)
	}
}

var _ = Describe("NewProcessorFromEnvironment", func() {
	BeforeEach(func() {
		snapshotEnv(payment.EnvAPIKey, payment.EnvAPIURL)
	})

	clientOf := func(p *payment.Processor) *gateway.Client {
		client, ok := p.Gateway().(*gateway.Client)
		Expect(ok).To(BeTrue())
		return client
	}

	Context("when PAYMENT_API_KEY is missing", func() {
		It("returns a configuration error", func() {
			processor, err := payment.NewProcessorFromEnvironment(newTestLogger())

			Expect(processor).To(BeNil())
			Expect(err).To(HaveOccurred())
			Expect(errors.IsConfigurationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(payment.EnvAPIKey))
		})

		It("treats an empty value as missing", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "")).To(Succeed())

			_, err := payment.NewProcessorFromEnvironment(newTestLogger())
			Expect(errors.IsConfigurationError(err)).To(BeTrue())
		})

		It("returns a separate error value on every call", func() {
			_, first := payment.GatewayConfigFromEnvironment()
			firstErr, ok := first.(*errors.AppError)
			Expect(ok).To(BeTrue())
			firstErr.WithDetails("changed by caller")

			_, second := payment.GatewayConfigFromEnvironment()
			secondErr, ok := second.(*errors.AppError)
			Expect(ok).To(BeTrue())
			Expect(secondErr).ToNot(BeIdenticalTo(firstErr))
			Expect(secondErr.Details).To(BeNil())
			Expect(secondErr.Code).To(Equal(errors.ErrCodeMissingAPIKey))
		})
	})

	Context("when only PAYMENT_API_KEY is set", func() {
		It("uses the default base URL", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "abc")).To(Succeed())

			processor, err := payment.NewProcessorFromEnvironment(newTestLogger())
			Expect(err).ToNot(HaveOccurred())

			cfg := clientOf(processor).Config()
			Expect(cfg.APIKey).To(Equal("abc"))
			Expect(cfg.BaseURL).To(Equal(payment.DefaultBaseURL))
			Expect(cfg.Timeout).To(Equal(gateway.DefaultTimeout))
		})
	})

	Context("when both variables are set", func() {
		It("reflects exactly the environment values", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "sk_live_1")).To(Succeed())
			Expect(os.Setenv(payment.EnvAPIURL, "http://localhost:8090")).To(Succeed())

			processor, err := payment.NewProcessorFromEnvironment(newTestLogger())
			Expect(err).ToNot(HaveOccurred())

			cfg := clientOf(processor).Config()
			Expect(cfg.APIKey).To(Equal("sk_live_1"))
			Expect(cfg.BaseURL).To(Equal("http://localhost:8090"))
			Expect(processor.MinAmount().Equal(payment.DefaultMinAmount)).To(BeTrue())
		})

		It("keeps a trailing slash in the URL", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "sk_live_1")).To(Succeed())
			Expect(os.Setenv(payment.EnvAPIURL, "http://gw/v1/")).To(Succeed())

			processor, err := payment.NewProcessorFromEnvironment(newTestLogger())
			Expect(err).ToNot(HaveOccurred())
			Expect(clientOf(processor).Config().BaseURL).To(Equal("http://gw/v1/"))
		})

		It("works without a logger", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "sk_live_1")).To(Succeed())

			processor, err := payment.NewProcessorFromEnvironment(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(processor.ProcessPayment(dec("0.10"), "tok_x").Success).To(BeFalse())
		})
	})

	Context("across calls", func() {
		It("re-reads the environment every time", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "first")).To(Succeed())
			first, err := payment.GatewayConfigFromEnvironment()
			Expect(err).ToNot(HaveOccurred())

			Expect(os.Setenv(payment.EnvAPIKey, "second")).To(Succeed())
			second, err := payment.GatewayConfigFromEnvironment()
			Expect(err).ToNot(HaveOccurred())

			Expect(first.APIKey).To(Equal("first"))
			Expect(second.APIKey).To(Equal("second"))

			Expect(os.Unsetenv(payment.EnvAPIKey)).To(Succeed())
			_, err = payment.GatewayConfigFromEnvironment()
			Expect(errors.IsConfigurationError(err)).To(BeTrue())
		})

		It("does not change what an earlier processor was built with", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "original")).To(Succeed())
			processor, err := payment.NewProcessorFromEnvironment(newTestLogger())
			Expect(err).ToNot(HaveOccurred())

			Expect(os.Setenv(payment.EnvAPIKey, "rotated")).To(Succeed())
			Expect(clientOf(processor).Config().APIKey).To(Equal("original"))
		})
	})

	Context("with options", func() {
		It("passes them to the processor", func() {
			Expect(os.Setenv(payment.EnvAPIKey, "abc")).To(Succeed())

			processor, err := payment.NewProcessorFromEnvironment(newTestLogger(), payment.WithMinAmount(dec("1.00")))
			Expect(err).ToNot(HaveOccurred())
			Expect(processor.MinAmount().Equal(dec("1.00"))).To(BeTrue())
		})
	})
})
