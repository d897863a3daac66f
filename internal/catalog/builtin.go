package catalog

// Shipped analytical queries. Both assume the ecommerce schema with
// customers and orders tables.
var builtinQueries = []Query{
	{
		Name:  "top-spenders",
		Label: "RANKING HIGH SPENDING CUSTOMERS",
		SQL: `WITH customer_spend AS (
    SELECT customer_id, SUM(total_amount) AS total_spent
    FROM orders
    WHERE order_status='Delivered'
    GROUP BY customer_id
    ),
ranked AS (
    SELECT customer_id, total_spent,
        RANK() OVER (ORDER BY total_spent DESC) AS rank
    FROM customer_spend
)
SELECT c.first_name, c.last_name, r.total_spent, r.rank
FROM ranked r
JOIN customers c ON r.customer_id = c.customer_id
WHERE r.rank <= 10;`,
	},
	{
		Name:  "revenue-growth",
		Label: "Month-over-Month Revenue Growth",
		SQL: `WITH monthly_revenue AS (
    SELECT
        DATE_TRUNC('month', order_date) AS month,
        SUM(total_amount) AS revenue
    FROM orders
    WHERE order_status = 'Delivered'
    GROUP BY DATE_TRUNC('month', order_date)
)
SELECT
    month,
    revenue,
    LAG(revenue) OVER (ORDER BY month) AS prev_month_revenue,
    ROUND(
        ((revenue - LAG(revenue) OVER (ORDER BY month)) /
         LAG(revenue) OVER (ORDER BY month) * 100), 2
    ) AS growth_percentage
FROM monthly_revenue
ORDER BY month;`,
	},
}
