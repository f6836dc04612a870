package ses

import (
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

// JSON shape of the SES v2 SendEmail request body.
type (
	sendEmailRequest struct {
		FromEmailAddress            string       `json:"FromEmailAddress"`
		FromEmailAddressIdentityArn string       `json:"FromEmailAddressIdentityArn,omitempty"`
		ConfigurationSetName        string       `json:"ConfigurationSetName,omitempty"`
		Destination                 destination  `json:"Destination"`
		ReplyToAddresses            []string     `json:"ReplyToAddresses,omitempty"`
		Content                     emailContent `json:"Content"`
		EmailTags                   []messageTag `json:"EmailTags,omitempty"`
	}

	destination struct {
		ToAddresses  []string `json:"ToAddresses,omitempty"`
		CcAddresses  []string `json:"CcAddresses,omitempty"`
		BccAddresses []string `json:"BccAddresses,omitempty"`
	}

	emailContent struct {
		Simple *simpleMessage `json:"Simple,omitempty"`
		Raw    *rawMessage    `json:"Raw,omitempty"`
	}

	simpleMessage struct {
		Subject contentPart `json:"Subject"`
		Body    messageBody `json:"Body"`
	}

	messageBody struct {
		HTML *contentPart `json:"Html,omitempty"`
		Text *contentPart `json:"Text,omitempty"`
	}

	contentPart struct {
		Data    string `json:"Data"`
		Charset string `json:"Charset,omitempty"`
	}

	// Data is base64-encoded by encoding/json.
	rawMessage struct {
		Data []byte `json:"Data"`
	}

	messageTag struct {
		Name  string `json:"Name"`
		Value string `json:"Value"`
	}
)

func newSendEmailRequest(env envelope, raw bool) (*sendEmailRequest, error) {
	email := env.email
	req := &sendEmailRequest{
		FromEmailAddress:            email.From,
		FromEmailAddressIdentityArn: env.sourceArn,
		ConfigurationSetName:        env.configurationSet,
		Destination: destination{
			ToAddresses:  email.To,
			CcAddresses:  email.CC,
			BccAddresses: email.BCC,
		},
		ReplyToAddresses: env.replyTo(),
	}
	for _, tag := range env.tags {
		req.EmailTags = append(req.EmailTags, messageTag{Name: tag[0], Value: tag[1]})
	}

	if raw {
		data, err := transport.BuildMIME(email)
		if err != nil {
			return nil, err
		}
		req.Content.Raw = &rawMessage{Data: data}
		return req, nil
	}

	msg := &simpleMessage{Subject: contentPart{Data: email.Subject, Charset: charset}}
	if email.HTML != "" {
		msg.Body.HTML = &contentPart{Data: email.HTML, Charset: charset}
	}
	if text := env.text(); text != "" {
		msg.Body.Text = &contentPart{Data: text, Charset: charset}
	}
	req.Content.Simple = msg
	return req, nil
}
