package sqlengine

// QueryRFMSegments scores every customer with NTILE(5) over recency,
// frequency and monetary value and aggregates the result per segment.
// Ties inside a window are broken by customer_id.
const QueryRFMSegments = `
WITH customer_metrics AS (
    SELECT
        customer_id,
        MAX(order_date) AS last_order_date,
        COUNT(DISTINCT order_id) AS frequency,
        SUM(order_amount) AS monetary,
        AVG(order_amount) AS avg_order_value
    FROM transactions
    GROUP BY customer_id
),

rfm_calculation AS (
    SELECT
        customer_id,
        last_order_date,
        CAST(julianday(@as_of) - julianday(last_order_date) AS INTEGER) AS recency_days,
        frequency,
        monetary,
        avg_order_value
    FROM customer_metrics
),

rfm_scores AS (
    SELECT
        *,
        NTILE(5) OVER (ORDER BY recency_days DESC, customer_id) AS r_score,
        NTILE(5) OVER (ORDER BY frequency, customer_id) AS f_score,
        NTILE(5) OVER (ORDER BY monetary, customer_id) AS m_score
    FROM rfm_calculation
),

customer_segmentation AS (
    SELECT
        *,
        r_score + f_score + m_score AS rfm_total,
        CASE
            WHEN r_score >= 4 AND f_score >= 4 AND m_score >= 4 THEN 'Champions'
            WHEN r_score >= 3 AND f_score >= 4 THEN 'Loyal Customers'
            WHEN r_score >= 4 AND f_score <= 2 THEN 'Promising'
            WHEN r_score >= 3 AND m_score >= 4 THEN 'Big Spenders'
            WHEN r_score <= 2 AND f_score >= 3 THEN 'At Risk'
            WHEN r_score <= 2 AND m_score >= 4 THEN 'Cant Lose Them'
            WHEN r_score <= 2 AND f_score <= 2 THEN 'Lost'
            ELSE 'Need Attention'
        END AS customer_segment
    FROM rfm_scores
)

SELECT
    customer_segment,
    COUNT(*) AS customer_count,
    ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER (), 2) AS segment_pct,
    ROUND(AVG(recency_days), 1) AS avg_recency_days,
    ROUND(AVG(frequency), 1) AS avg_frequency,
    ROUND(AVG(monetary), 0) AS avg_monetary,
    ROUND(AVG(avg_order_value), 0) AS avg_order_value
FROM customer_segmentation
GROUP BY customer_segment
ORDER BY avg_monetary DESC, customer_segment
`
