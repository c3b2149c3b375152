package postgre

const dossierColumns = `id, reference, COALESCE(claim_number, '') AS claim_number, status,
	entry_date, last_expert_reminder_at, report_received_at,
	client_id, vehicle_id, site_profile_id,
	COALESCE(expert_name, '') AS expert_name, COALESCE(expert_email, '') AS expert_email,
	notify_client`

const listAwaitingDossiersQuery = `
	SELECT ` + dossierColumns + `
	FROM dossiers
	WHERE status IN ('awaiting_expert', 'expert_reminded')
	  AND report_received_at IS NULL
	ORDER BY entry_date ASC, id ASC`

const getDossierQuery = `SELECT ` + dossierColumns + ` FROM dossiers WHERE id = $1`

// The timestamp guard makes the transition happen at most once; the CASE keeps
// statuses past the awaiting ones untouched.
const markReportReceivedQuery = `
	UPDATE dossiers
	SET report_received_at = $2,
	    status = CASE WHEN status IN ('awaiting_expert', 'expert_reminded')
	                  THEN 'report_received' ELSE status END,
	    updated_at = $2
	WHERE id = $1 AND report_received_at IS NULL`

const markExpertRemindedQuery = `
	UPDATE dossiers
	SET status = 'expert_reminded',
	    last_expert_reminder_at = $2,
	    updated_at = $2
	WHERE id = $1
	  AND report_received_at IS NULL
	  AND status IN ('awaiting_expert', 'expert_reminded')`

const listStopDocumentsQuery = `
	SELECT id, dossier_id, type, COALESCE(storage_key, '') AS storage_key, created_at
	FROM dossier_documents
	WHERE dossier_id = $1
	  AND type IN ('expert_report', 'settlement_record', 'payment_proof')
	ORDER BY created_at ASC, id ASC`

const insertDocumentQuery = `
	INSERT INTO dossier_documents (id, dossier_id, type, storage_key, created_at)
	VALUES (:id, :dossier_id, :type, :storage_key, :created_at)`

const getClientQuery = `
	SELECT id, COALESCE(first_name, '') AS first_name, COALESCE(last_name, '') AS last_name,
	       COALESCE(email, '') AS email, COALESCE(phone, '') AS phone
	FROM clients WHERE id = $1`

const getClientPreferenceQuery = `
	SELECT client_id, sms_enabled, email_enabled
	FROM client_preferences WHERE client_id = $1`

const getVehicleQuery = `
	SELECT id, COALESCE(plate, '') AS plate, COALESCE(vin, '') AS vin
	FROM vehicles WHERE id = $1`

const getSiteProfileQuery = `
	SELECT id, name, COALESCE(search_url, '') AS search_url, auth_mode,
	       credentials_encrypted, selectors, active
	FROM site_automation_profiles WHERE id = $1`

const loadSettingsQuery = `SELECT key, COALESCE(value, '') AS value FROM reminder_settings`
