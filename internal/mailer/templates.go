package mailer

import "html/template"

// The two fixed message bodies. html/template escapes submitted values, so
// form input cannot inject markup into the emails.

var adminTemplate = template.Must(template.New("admin").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #F15F31; border-bottom: 2px solid #F15F31; padding-bottom: 10px;">
    New quote request
  </h2>

  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #333;">Client details</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
    {{if .Promo}}<p><strong>Promo code:</strong> {{.Promo}}</p>{{end}}
  </div>

  <div style="background-color: #fff; padding: 20px; border-left: 4px solid #F15F31; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #333;">Task description</h3>
    <p style="line-height: 1.6; color: #555;">{{.Task}}</p>
  </div>

  <div style="margin-top: 30px; padding: 15px; background-color: #e8f5e8; border-radius: 5px;">
    <p style="margin: 0; color: #2e7d2e; font-size: 14px;">
      <strong>Submitted at:</strong> {{.CreatedAt.Format "2006-01-02 15:04:05 MST"}}
    </p>
  </div>
</div>
`))

var ackTemplate = template.Must(template.New("ack").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #F15F31; border-bottom: 2px solid #F15F31; padding-bottom: 10px;">
    Thank you for your request!
  </h2>

  <p>Hello, <strong>{{.Name}}</strong>!</p>

  <p>We have received your quote request and will get back to you shortly.</p>

  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #333;">Your details</h3>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
  </div>

  <div style="background-color: #fff; padding: 20px; border-left: 4px solid #F15F31; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #333;">Your task</h3>
    <p style="line-height: 1.6; color: #555;">{{.Task}}</p>
  </div>

  <p>If you have any further questions, feel free to contact us.</p>

  <div style="margin-top: 30px; padding: 15px; background-color: #e8f5e8; border-radius: 5px;">
    <p style="margin: 0; color: #2e7d2e; font-size: 14px;">
      Best regards,<br>
      The print agency team
    </p>
  </div>
</div>
`))
