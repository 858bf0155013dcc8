/*
Package task provides the Task aggregate: a typed unit of back-office work
owned by one agent role.

Every task Type belongs to exactly one Role:

	secretary:  send_email, send_thankyou_email, prepare_contract
	accounting: create_invoice, send_payment_reminder, calculate_driver_wage
	scheduler:  assign_driver, send_daily_reminder, check_overdue
	comms:      notify_customer, notify_driver, send_status_update
	dispatcher: escalate

Tasks are created Pending and become Completed once acknowledged. Completion
is final.
*/
package task
