package documents

// The notice templates follow the layout of the prescribed GOV.UK forms:
// Form 3 (Housing Act 1988 section 8) and Form 6A (section 21(1) and (4)).
// Field placement mirrors the completed specimen notices used as fixtures.
var formTemplates = map[string]string{
	FormSection8Notice:  form3Template,
	FormSection21Notice: form6aTemplate,
	FormParticulars:     particularsTemplate,
}

const form3Template = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Form 3 - Section 8 Notice</title>
<style>
body { font-family: Arial, sans-serif; font-size: 11pt; line-height: 1.4; margin: 40px; }
h1 { font-size: 14pt; font-weight: bold; text-align: center; margin-bottom: 5px; }
h2 { font-size: 12pt; font-weight: bold; text-align: center; margin-top: 5px; }
.header { text-align: center; margin-bottom: 20px; border-bottom: 2px solid black; padding-bottom: 10px; }
.form-no { font-size: 16pt; font-weight: bold; }
.section { margin-bottom: 15px; }
.section-num { font-weight: bold; }
.field-value { background-color: #f0f0f0; padding: 5px; border: 1px solid #ccc; margin: 5px 0; }
.signature-block { margin-top: 30px; border-top: 1px solid black; padding-top: 20px; }
hr { border: none; border-top: 1px solid black; margin: 20px 0; }
</style>
</head>
<body>

<div class="header">
<p class="form-no">FORM NO. 3</p>
<p><strong>Housing Act 1988 section 8 (as amended)</strong></p>
<h1>NOTICE OF INTENTION TO BEGIN PROCEEDINGS FOR POSSESSION</h1>
<h2>OF A PROPERTY IN ENGLAND</h2>
<p>let on an Assured Tenancy or an Assured Agricultural Occupancy</p>
</div>

<hr>

<div class="section">
<p><span class="section-num">1. To:</span></p>
<div class="field-value">{{fact . "tenant_full_name"}}</div>
</div>

<div class="section">
<p><span class="section-num">2. Your landlord/licensor intends to apply to the court for an order requiring you to give up possession of:</span></p>
<div class="field-value">{{fact . "property_address"}}</div>
</div>

<div class="section">
<p><span class="section-num">3. Your landlord/licensor intends to seek possession on ground(s):</span></p>
<div class="field-value"><strong>Grounds {{fact . "section8_grounds"}}</strong></div>
<p>in Schedule 2 to the Housing Act 1988 (as amended), which read(s):</p>
<div class="field-value" style="white-space: pre-wrap;">{{fact . "section8.ground_text"}}</div>
</div>

<div class="section">
<p><span class="section-num">4. Give a full explanation of why each ground is being relied on:</span></p>
<div class="field-value" style="white-space: pre-wrap;">{{fact . "section8.particulars"}}
{{if hasFact . "arrears.total_amount_pounds"}}
Current rent arrears: GBP {{pounds . "arrears.total_amount_pounds"}}
Monthly rent amount: GBP {{pounds . "tenancy.monthly_rent_pounds"}}{{end}}</div>
</div>

<div class="section">
<p><span class="section-num">5. The court proceedings will not begin earlier than:</span></p>
<div class="field-value">{{fact . "notice_service.earliest_proceedings_date"}}</div>
</div>

<div class="section">
<p><span class="section-num">6.</span> The latest date for court proceedings to begin is <strong>12 months</strong> from the date of service of this notice.</p>
</div>

<div class="signature-block">
<p><span class="section-num">7. Name and address of landlord, licensor or landlord's agent:</span></p>

<table style="margin-top: 15px;">
<tr><td style="width: 120px;"><strong>Name:</strong></td><td>{{fact . "landlord_full_name"}}</td></tr>
<tr><td><strong>Address:</strong></td><td>{{fact . "landlord_address"}}</td></tr>
<tr><td><strong>Telephone:</strong></td><td>{{fact . "landlord_phone"}}</td></tr>
</table>

<p style="margin-top: 15px;"><strong>Date:</strong> {{fact . "notice_service.notice_date"}}</p>
</div>

<hr>
<p style="text-align: center; font-style: italic;">This notice was served on: {{fact . "notice_service.notice_date"}}</p>

</body>
</html>
`

const form6aTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Form 6A - Section 21 Notice</title>
<style>
body { font-family: Arial, sans-serif; font-size: 11pt; line-height: 1.4; margin: 40px; }
h1 { font-size: 14pt; font-weight: bold; text-align: center; margin-bottom: 5px; }
h2 { font-size: 12pt; font-weight: bold; text-align: center; margin-top: 5px; }
.header { text-align: center; margin-bottom: 20px; border-bottom: 2px solid black; padding-bottom: 10px; }
.form-no { font-size: 16pt; font-weight: bold; }
.section { margin-bottom: 15px; }
.section-num { font-weight: bold; }
.field-value { background-color: #f0f0f0; padding: 5px; border: 1px solid #ccc; margin: 5px 0; }
.signature-block { margin-top: 30px; border-top: 1px solid black; padding-top: 20px; }
hr { border: none; border-top: 1px solid black; margin: 20px 0; }
</style>
</head>
<body>

<div class="header">
<p class="form-no">FORM NO. 6A</p>
<p><strong>Housing Act 1988 section 21(1) and (4) (as amended)</strong></p>
<h1>NOTICE REQUIRING POSSESSION</h1>
<h2>OF A PROPERTY IN ENGLAND</h2>
<p>let on an Assured Shorthold Tenancy</p>
</div>

<hr>

<div class="section">
<p><span class="section-num">1. To:</span></p>
<div class="field-value">{{fact . "tenant_full_name"}}</div>
</div>

<div class="section">
<p><span class="section-num">2. You are required to leave the below address after:</span></p>
<div class="field-value">{{fact . "notice_service.expiry_date"}}</div>

<p>If you do not leave, your landlord may apply to the court for an order under Section 21(1) or (4) of the Housing Act 1988 requiring you to give up possession of:</p>
<div class="field-value">{{fact . "property_address"}}</div>

<p style="margin-top: 10px;">If your landlord does not apply to the court within a given timeframe this notice will lapse. Your landlord can rely on this notice to apply to the court during the period of 6 months commencing from the date this notice is given to you.</p>
</div>

<div class="signature-block">
<p><span class="section-num">3. Name and address of landlord or landlord's agent:</span></p>

<table style="margin-top: 15px;">
<tr><td style="width: 120px;"><strong>Name:</strong></td><td>{{fact . "landlord_full_name"}}</td></tr>
<tr><td><strong>Address:</strong></td><td>{{fact . "landlord_address"}}</td></tr>
<tr><td><strong>Telephone:</strong></td><td>{{fact . "landlord_phone"}}</td></tr>
</table>

<p style="margin-top: 15px;"><strong>Date:</strong> {{fact . "notice_service.notice_date"}}</p>
</div>

</body>
</html>
`

const particularsTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Particulars of Claim - Rent Arrears</title>
<style>
body { font-family: Arial, sans-serif; font-size: 11pt; line-height: 1.5; margin: 40px; }
h1 { font-size: 14pt; font-weight: bold; text-align: center; }
.field-value { background-color: #f0f0f0; padding: 5px; border: 1px solid #ccc; margin: 5px 0; }
</style>
</head>
<body>

<h1>PARTICULARS OF CLAIM</h1>

<p>1. The Claimant, {{fact . "landlord_full_name"}}, is the landlord of the property at:</p>
<div class="field-value">{{fact . "property_address"}}</div>

<p>2. The Defendant, {{fact . "tenant_full_name"}}, occupies the property under a tenancy
which began on {{fact . "tenancy.start_date"}} at a rent of
GBP {{pounds . "tenancy.monthly_rent_pounds"}} per month.</p>

<p>3. The Defendant has failed to pay rent due under the tenancy. As at
{{fact . "arrears.statement_date"}} the arrears stand at
GBP {{pounds . "arrears.total_amount_pounds"}}.</p>

{{if hasFact . "section8_grounds"}}<p>4. The Claimant relies on grounds {{fact . "section8_grounds"}}
in Schedule 2 to the Housing Act 1988 (as amended).</p>{{end}}

<p>The Claimant claims possession of the property, payment of the arrears, and costs.</p>

</body>
</html>
`
