package email

// Config holds mail transport configuration. The Postmark tokens are
// optional so development environments can run on the file-based
// DevSender; SenderEmail establishes the sender identity for all
// outbound mail and is always required.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
