package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gatewaytypes "github.com/frahmantamala/payment-processor/internal/core/datamodel/gateway"
	"github.com/frahmantamala/payment-processor/internal/payment"
)

type outcomeCounter struct {
	successes int
	failures  int
}

func (c *outcomeCounter) ObserveOutcome(success bool) {
	if success {
		c.successes++
	} else {
		c.failures++
	}
}

var _ = Describe("Handler", func() {
	var (
		gw       *fakeGateway
		counter  *outcomeCounter
		handler  *payment.Handler
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		gw = &fakeGateway{result: &gatewaytypes.ChargeResult{ID: "txn_12345"}}
		counter = &outcomeCounter{}
		handler = payment.NewHandler(payment.NewProcessor(gw, newTestLogger()), counter, newTestLogger())
		recorder = httptest.NewRecorder()
	})

	post := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		handler.CreatePayment(recorder, req)
	}

	decodeBody := func() map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(recorder.Body).Decode(&body)).To(Succeed())
		return body
	}

	Describe("CreatePayment", func() {
		It("returns 200 with the transaction id on success", func() {
			post(`{"amount":"10.00","card_token":"tok_visa"}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(decodeBody()).To(Equal(map[string]interface{}{
				"success":        true,
				"transaction_id": "txn_12345",
				"message":        payment.MessageProcessed,
			}))
			Expect(counter.successes).To(Equal(1))
		})

		It("returns 402 with a null transaction id when rejected", func() {
			post(`{"amount":"0.25","card_token":"tok_x"}`)

			Expect(recorder.Code).To(Equal(http.StatusPaymentRequired))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body).To(HaveKeyWithValue("transaction_id", BeNil()))
			Expect(body["message"]).To(ContainSubstring("at least"))
			Expect(gw.CallCount()).To(BeZero())
			Expect(counter.failures).To(Equal(1))
		})

		It("returns 402 when the gateway fails", func() {
			gw.err = errFake("dial tcp: connection refused")
			post(`{"amount":"10.00","card_token":"tok_visa"}`)

			Expect(recorder.Code).To(Equal(http.StatusPaymentRequired))
			Expect(decodeBody()["message"]).To(ContainSubstring("connection refused"))
		})

		It("returns 400 for malformed JSON", func() {
			post(`{"amount":`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			errBody := decodeBody()["error"].(map[string]interface{})
			Expect(errBody["code"]).To(Equal("INVALID_BODY"))
			Expect(gw.CallCount()).To(BeZero())
		})

		It("returns 400 when the amount is missing", func() {
			post(`{"card_token":"tok_visa"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(counter.successes + counter.failures).To(BeZero())
		})

		It("returns 400 when the amount is not a decimal", func() {
			post(`{"amount":"ten","card_token":"tok_visa"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			errBody := decodeBody()["error"].(map[string]interface{})
			details := errBody["details"].(map[string]interface{})["errors"].([]interface{})
			Expect(details[0].(map[string]interface{})["code"]).To(Equal("INVALID_AMOUNT"))
		})

		DescribeTable("returns 400 for amounts outside the supported range",
			func(amount string) {
				post(`{"amount":"` + amount + `","card_token":"tok_visa"}`)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				errBody := decodeBody()["error"].(map[string]interface{})
				details := errBody["details"].(map[string]interface{})["errors"].([]interface{})
				Expect(details[0].(map[string]interface{})["code"]).To(Equal("INVALID_AMOUNT"))
				Expect(details[0].(map[string]interface{})["message"]).To(Equal("amount is out of range"))
				Expect(gw.CallCount()).To(BeZero())
				Expect(counter.successes + counter.failures).To(BeZero())
			},
			Entry("huge exponent", "1e20000000"),
			Entry("tiny exponent", "1e-20000000"),
			Entry("too many digits", strings.Repeat("9", 40)),
		)
	})
})

type errFake string

func (e errFake) Error() string { return string(e) }
